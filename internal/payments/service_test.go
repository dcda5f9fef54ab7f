package payments

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type memoryRepo struct {
	rows   map[string]Payment
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]Payment)}
}

func (r *memoryRepo) Create(ctx context.Context, p Payment) (Payment, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.rows[p.TransactionID] = p
	return p, nil
}

func (r *memoryRepo) GetByTransaction(ctx context.Context, transactionID string) (Payment, error) {
	p, ok := r.rows[transactionID]
	if !ok {
		return Payment{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) UpdateState(ctx context.Context, transactionID, state string) error {
	p, ok := r.rows[transactionID]
	if !ok {
		return shared.ErrNotFound
	}
	p.State = state
	r.rows[transactionID] = p
	return nil
}

type stubClient struct {
	created Receipt
	checked Receipt
	err     error
}

func (c *stubClient) CreateReceipt(ctx context.Context, amount int64, contributionID int64) (Receipt, error) {
	if c.err != nil {
		return Receipt{}, c.err
	}
	return c.created, nil
}

func (c *stubClient) CheckReceipt(ctx context.Context, receiptID string) (Receipt, error) {
	if c.err != nil {
		return Receipt{}, c.err
	}
	return c.checked, nil
}

func TestCreateStoresPendingPayment(t *testing.T) {
	repo := newMemoryRepo()
	client := &stubClient{created: Receipt{ID: "rcpt-1", State: ReceiptStateCreated, Amount: 90000}}
	svc := NewService(repo, client, slog.Default())

	payment, err := svc.Create(context.Background(), 42, 90000)
	require.NoError(t, err)
	require.Equal(t, "rcpt-1", payment.TransactionID)
	require.Equal(t, StatePending, payment.State)
	require.Equal(t, int64(42), payment.ContributionID)
}

func TestGetStatusRefreshesPendingPayment(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["rcpt-2"] = Payment{ID: 1, TransactionID: "rcpt-2", State: StatePending}
	client := &stubClient{checked: Receipt{ID: "rcpt-2", State: ReceiptStatePaid}}
	svc := NewService(repo, client, slog.Default())

	payment, err := svc.GetStatus(context.Background(), "rcpt-2")
	require.NoError(t, err)
	require.Equal(t, StatePaid, payment.State)
	require.Equal(t, StatePaid, repo.rows["rcpt-2"].State)
}

func TestGetStatusSkipsProviderForSettledPayment(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["rcpt-3"] = Payment{ID: 1, TransactionID: "rcpt-3", State: StatePaid}
	client := &stubClient{checked: Receipt{ID: "rcpt-3", State: ReceiptStateCanceled}}
	svc := NewService(repo, client, slog.Default())

	payment, err := svc.GetStatus(context.Background(), "rcpt-3")
	require.NoError(t, err)
	require.Equal(t, StatePaid, payment.State)
}

func TestApplyWebhookTransitions(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["rcpt-4"] = Payment{ID: 1, TransactionID: "rcpt-4", State: StatePending}
	svc := NewService(repo, &stubClient{}, slog.Default())

	require.NoError(t, svc.ApplyWebhook(context.Background(), "rcpt-4", "receipts.pay"))
	require.Equal(t, StatePaid, repo.rows["rcpt-4"].State)

	require.NoError(t, svc.ApplyWebhook(context.Background(), "rcpt-4", "receipts.cancel"))
	require.Equal(t, StateCanceled, repo.rows["rcpt-4"].State)
}

func TestApplyWebhookNotifiesPaidContribution(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["rcpt-6"] = Payment{ID: 1, TransactionID: "rcpt-6", ContributionID: 42, State: StatePending}
	svc := NewService(repo, &stubClient{}, slog.Default())

	var notified []int64
	svc.OnPaid(func(ctx context.Context, contributionID int64) {
		notified = append(notified, contributionID)
	})

	require.NoError(t, svc.ApplyWebhook(context.Background(), "rcpt-6", "receipts.pay"))
	require.Equal(t, []int64{42}, notified)

	require.NoError(t, svc.ApplyWebhook(context.Background(), "rcpt-6", "receipts.cancel"))
	require.Len(t, notified, 1)
}

func TestApplyWebhookRejectsUnknownMethod(t *testing.T) {
	svc := NewService(newMemoryRepo(), &stubClient{}, slog.Default())
	err := svc.ApplyWebhook(context.Background(), "rcpt-5", "receipts.explode")
	require.ErrorIs(t, err, ErrUnknownWebhookMethod)
}
