package payments

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func webhookFixture(t *testing.T) (*chi.Mux, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	svc := NewService(repo, &stubClient{}, slog.Default())
	handler := NewHandler(slog.Default(), svc, "secret-key")

	r := chi.NewRouter()
	r.Route("/payments", handler.MountRoutes)
	return r, repo
}

// webhookDigest builds the X-Auth value the provider sends.
func webhookDigest(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(key + ":"))
}

func TestWebhookRejectsBadKey(t *testing.T) {
	router, _ := webhookFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook",
		strings.NewReader(`{"method":"receipts.pay","params":{"id":"rcpt-1"}}`))
	req.Header.Set("X-Auth", "wrong-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_CREDENTIAL")
}

func TestWebhookRejectsRawKey(t *testing.T) {
	router, repo := webhookFixture(t)
	repo.rows["rcpt-1"] = Payment{ID: 1, TransactionID: "rcpt-1", State: StatePending}

	// The provider never sends the bare key, only its base64 digest.
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook",
		strings.NewReader(`{"method":"receipts.pay","params":{"id":"rcpt-1"}}`))
	req.Header.Set("X-Auth", "secret-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, StatePending, repo.rows["rcpt-1"].State)
}

func TestWebhookAppliesPayTransition(t *testing.T) {
	router, repo := webhookFixture(t)
	repo.rows["rcpt-1"] = Payment{ID: 1, TransactionID: "rcpt-1", State: StatePending}

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook",
		strings.NewReader(`{"method":"receipts.pay","params":{"id":"rcpt-1"}}`))
	req.Header.Set("X-Auth", webhookDigest("secret-key"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, StatePaid, repo.rows["rcpt-1"].State)
}

func TestWebhookUnknownMethod(t *testing.T) {
	router, repo := webhookFixture(t)
	repo.rows["rcpt-1"] = Payment{ID: 1, TransactionID: "rcpt-1", State: StatePending}

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook",
		strings.NewReader(`{"method":"receipts.refund","params":{"id":"rcpt-1"}}`))
	req.Header.Set("X-Auth", webhookDigest("secret-key"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, StatePending, repo.rows["rcpt-1"].State)
}

func TestWebhookUnknownTransaction(t *testing.T) {
	router, _ := webhookFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook",
		strings.NewReader(`{"method":"receipts.cancel","params":{"id":"missing"}}`))
	req.Header.Set("X-Auth", webhookDigest("secret-key"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
