package contributions

import "time"

// Contribution is a pledge from a contributor to a startup.
type Contribution struct {
	ID            int64      `json:"contribution_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Amount        float64    `json:"amount"`
	StartupID     int64      `json:"startup_id"`
	ContributorID int64      `json:"contributor_id"`
}

// SummaryRow aggregates pledges per startup for the bank reconciliation
// export.
type SummaryRow struct {
	StartupID    int64   `json:"startup_id"`
	StartupTitle string  `json:"startup_title"`
	TotalAmount  float64 `json:"total_amount"`
	Contributors int64   `json:"contributors"`
}
