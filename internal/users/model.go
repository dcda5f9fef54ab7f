package users

import (
	"time"

	"github.com/dreamteam-fund/dreamteam/internal/identity"
)

// User is an account row. PasswordHash never leaves the package.
type User struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Role           string
	PhoneID        *int64
	EntrepreneurID *int64
	ContributorID  *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile aggregates the account with its linked records for the
// profile endpoint.
type Profile struct {
	User         User
	Phone        *ProfilePhone
	Entrepreneur *ProfileEntrepreneur
	Contributor  *ProfileContributor
}

// ProfilePhone is the phone subset shown on a profile.
type ProfilePhone struct {
	CountryCode        string `json:"country_code"`
	MobileOperatorCode string `json:"mobile_operator_code"`
	PhoneNumber        string `json:"phone_number"`
}

// ProfileEntrepreneur is the entrepreneur block of an own profile:
// the KYC documents plus the startups the user founded.
type ProfileEntrepreneur struct {
	ID         int64              `json:"id"`
	Gender     string             `json:"gender"`
	Passport   *identity.Passport `json:"passport,omitempty"`
	Address    *identity.Address  `json:"address,omitempty"`
	StartupIDs []int64            `json:"startup_ids,omitempty"`
}

// ProfileContributor is the contributor block of an own profile.
type ProfileContributor struct {
	ID              int64              `json:"id"`
	Gender          string             `json:"gender"`
	Passport        *identity.Passport `json:"passport,omitempty"`
	ContributionIDs []int64            `json:"contribution_ids,omitempty"`
}
