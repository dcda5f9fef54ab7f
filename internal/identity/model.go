// Package identity stores the KYC documents attached to entrepreneurs and
// contributors. It has no HTTP surface of its own; the owning modules create
// these records inside their own transactions.
package identity

import "time"

// Passport is a government-issued identity document.
type Passport struct {
	ID             int64     `json:"passport_id"`
	Series         string    `json:"series"`
	Number         string    `json:"number"`
	IssueDate      time.Time `json:"issue_date"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// Address is a postal address for an entrepreneur.
type Address struct {
	ID           int64  `json:"address_id"`
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
	Region       string `json:"region"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Zip          string `json:"zip"`
}

// BankAgreement is the signed document linking a participant to the fund's
// partner bank.
type BankAgreement struct {
	ID       int64  `json:"agreement_id"`
	Document string `json:"document"`
	IsSigned bool   `json:"is_signed"`
}
