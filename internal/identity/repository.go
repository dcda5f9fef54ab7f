package identity

import (
	"context"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
)

// Repository persists identity documents. Every method takes a db.Querier so
// callers can compose the inserts into a single transaction.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (Repository) CreatePassport(ctx context.Context, q db.Querier, p Passport) (Passport, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO passports (series, number, issue_date, expiration_date)
		 VALUES ($1, $2, $3, $4) RETURNING passport_id`,
		p.Series, p.Number, p.IssueDate, p.ExpirationDate,
	).Scan(&p.ID)
	if err != nil {
		return Passport{}, db.MapError(err)
	}
	return p, nil
}

func (Repository) GetPassport(ctx context.Context, q db.Querier, id int64) (Passport, error) {
	var p Passport
	err := q.QueryRow(ctx,
		`SELECT passport_id, series, number, issue_date, expiration_date
		 FROM passports WHERE passport_id = $1`, id,
	).Scan(&p.ID, &p.Series, &p.Number, &p.IssueDate, &p.ExpirationDate)
	if err != nil {
		return Passport{}, db.MapError(err)
	}
	return p, nil
}

func (Repository) CreateAddress(ctx context.Context, q db.Querier, a Address) (Address, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO addresses (street_number, street_name, region, city, country, zip)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING address_id`,
		a.StreetNumber, a.StreetName, a.Region, a.City, a.Country, a.Zip,
	).Scan(&a.ID)
	if err != nil {
		return Address{}, db.MapError(err)
	}
	return a, nil
}

func (Repository) GetAddress(ctx context.Context, q db.Querier, id int64) (Address, error) {
	var a Address
	err := q.QueryRow(ctx,
		`SELECT address_id, street_number, street_name, region, city, country, zip
		 FROM addresses WHERE address_id = $1`, id,
	).Scan(&a.ID, &a.StreetNumber, &a.StreetName, &a.Region, &a.City, &a.Country, &a.Zip)
	if err != nil {
		return Address{}, db.MapError(err)
	}
	return a, nil
}

func (Repository) CreateBankAgreement(ctx context.Context, q db.Querier, b BankAgreement) (BankAgreement, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO bank_agreements (document, is_signed)
		 VALUES ($1, $2) RETURNING agreement_id`,
		b.Document, b.IsSigned,
	).Scan(&b.ID)
	if err != nil {
		return BankAgreement{}, db.MapError(err)
	}
	return b, nil
}

func (Repository) GetBankAgreement(ctx context.Context, q db.Querier, id int64) (BankAgreement, error) {
	var b BankAgreement
	err := q.QueryRow(ctx,
		`SELECT agreement_id, document, is_signed
		 FROM bank_agreements WHERE agreement_id = $1`, id,
	).Scan(&b.ID, &b.Document, &b.IsSigned)
	if err != nil {
		return BankAgreement{}, db.MapError(err)
	}
	return b, nil
}

func (Repository) SignBankAgreement(ctx context.Context, q db.Querier, id int64) error {
	_, err := q.Exec(ctx,
		`UPDATE bank_agreements SET is_signed = TRUE WHERE agreement_id = $1`, id)
	return db.MapError(err)
}
