package startups

import "time"

// Startup is a fundraising campaign.
type Startup struct {
	ID                   int64      `json:"startup_id"`
	Title                string     `json:"title"`
	ActiveStatus         bool       `json:"active_status"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	Description          string     `json:"description"`
	VideoLink            *string    `json:"video_link,omitempty"`
	DonatedAmount        float64    `json:"donated_amount"`
	NumberOfContributors int64      `json:"number_of_contributors"`
	Rating               float64    `json:"rating"`
	Type                 string     `json:"type"`
	Batch                *string    `json:"batch,omitempty"`
	CategoryID           int64      `json:"category_id"`
	RegionID             int64      `json:"region_id"`
}

// CatalogEntry is the public listing row: no funding internals beyond the
// headline numbers.
type CatalogEntry struct {
	ID            int64   `json:"startup_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DonatedAmount float64 `json:"donated_amount"`
	Rating        float64 `json:"rating"`
	Category      string  `json:"category"`
	Region        string  `json:"region"`
}

// Details enriches a startup with its category and region names. Owner
// is filled only for viewers entitled to the founder's contact data.
type Details struct {
	Startup
	CategoryName string        `json:"category_name"`
	RegionName   string        `json:"region_name"`
	Owner        *OwnerContact `json:"owner,omitempty"`
}

// OwnerContact is the founding entrepreneur's contact block, shown to
// the founder, contributors of the startup, and admins.
type OwnerContact struct {
	UserID      int64   `json:"-"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Viewer identifies the caller for the details endpoint.
type Viewer struct {
	UserID int64
	Admin  bool
}

// Stats is the aggregate recomputed from contributions.
type Stats struct {
	DonatedAmount        float64
	NumberOfContributors int64
}
