package payments

import (
	"context"
	"log/slog"
)

// ReceiptClient is the provider surface the service needs. Satisfied by
// *Client; tests substitute a stub.
type ReceiptClient interface {
	CreateReceipt(ctx context.Context, amount int64, contributionID int64) (Receipt, error)
	CheckReceipt(ctx context.Context, receiptID string) (Receipt, error)
}

type Service struct {
	repo   Repository
	client ReceiptClient
	logger *slog.Logger
	onPaid func(ctx context.Context, contributionID int64)
}

func NewService(repo Repository, client ReceiptClient, logger *slog.Logger) *Service {
	return &Service{repo: repo, client: client, logger: logger}
}

// OnPaid registers a callback invoked after a payment reaches the paid
// state through the provider webhook.
func (s *Service) OnPaid(fn func(ctx context.Context, contributionID int64)) {
	s.onPaid = fn
}

// Create opens a provider receipt for the contribution and records the
// pending payment.
func (s *Service) Create(ctx context.Context, contributionID, amount int64) (Payment, error) {
	receipt, err := s.client.CreateReceipt(ctx, amount, contributionID)
	if err != nil {
		return Payment{}, err
	}
	return s.repo.Create(ctx, Payment{
		TransactionID:  receipt.ID,
		ContributionID: contributionID,
		Amount:         amount,
		State:          StatePending,
	})
}

// GetStatus returns the stored payment, refreshed against the provider
// when it is still pending.
func (s *Service) GetStatus(ctx context.Context, transactionID string) (Payment, error) {
	payment, err := s.repo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return Payment{}, err
	}
	if payment.State != StatePending {
		return payment, nil
	}

	receipt, err := s.client.CheckReceipt(ctx, transactionID)
	if err != nil {
		// The stored state is still authoritative enough to return.
		s.logger.Warn("check receipt", slog.String("transaction_id", transactionID), slog.Any("error", err))
		return payment, nil
	}
	if state := stateFromReceipt(receipt.State); state != payment.State {
		if err := s.repo.UpdateState(ctx, transactionID, state); err != nil {
			return Payment{}, err
		}
		payment.State = state
	}
	return payment, nil
}

// ApplyWebhook records a provider-initiated state transition.
func (s *Service) ApplyWebhook(ctx context.Context, transactionID, method string) error {
	var state string
	switch method {
	case "receipts.pay":
		state = StatePaid
	case "receipts.cancel":
		state = StateCanceled
	default:
		return ErrUnknownWebhookMethod
	}

	payment, err := s.repo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateState(ctx, transactionID, state); err != nil {
		return err
	}
	if state == StatePaid && s.onPaid != nil {
		s.onPaid(ctx, payment.ContributionID)
	}
	return nil
}
