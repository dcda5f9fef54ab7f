package contributors

import (
	"time"

	"github.com/dreamteam-fund/dreamteam/internal/identity"
)

// Contributor is a backer registered on the platform.
type Contributor struct {
	ID          int64     `json:"contributor_id"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`
	PassportID  int64     `json:"passport_id"`
	AgreementID *int64    `json:"agreement_id,omitempty"`
}

// CreateInput is the composite payload. The bank agreement is optional;
// contributors below the bank threshold fund without one.
type CreateInput struct {
	UserID      int64
	Gender      string
	DateOfBirth time.Time
	Passport    identity.Passport
	Agreement   *identity.BankAgreement
}
