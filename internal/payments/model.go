package payments

import "time"

// Payment states mirror the provider receipt lifecycle.
const (
	StatePending  = "pending"
	StatePaid     = "paid"
	StateCanceled = "canceled"
)

// Payment links a provider receipt to a contribution.
type Payment struct {
	ID             int64     `json:"payment_id"`
	TransactionID  string    `json:"transaction_id"`
	ContributionID int64     `json:"contribution_id"`
	Amount         int64     `json:"amount"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func stateFromReceipt(state int) string {
	switch state {
	case ReceiptStatePaid:
		return StatePaid
	case ReceiptStateCanceled:
		return StateCanceled
	default:
		return StatePending
	}
}
