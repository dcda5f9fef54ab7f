package entrepreneurs

import (
	"time"

	"github.com/dreamteam-fund/dreamteam/internal/identity"
)

// Entrepreneur is a founder registered on the platform.
type Entrepreneur struct {
	ID          int64     `json:"entrepreneur_id"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`
	PassportID  int64     `json:"passport_id"`
	AddressID   int64     `json:"address_id"`
	AgreementID int64     `json:"agreement_id"`
	StartupID   *int64    `json:"startup_id,omitempty"`
}

// CreateInput is the composite payload: the entrepreneur row plus the
// identity documents created alongside it in one transaction.
type CreateInput struct {
	UserID      int64
	Gender      string
	DateOfBirth time.Time
	Passport    identity.Passport
	Address     identity.Address
	Agreement   identity.BankAgreement
}
