package payments

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// ErrUnknownWebhookMethod rejects webhook calls outside the receipts
// lifecycle.
var ErrUnknownWebhookMethod = errors.New("payments: unknown webhook method")

type Handler struct {
	logger        *slog.Logger
	service       *Service
	webhookDigest string
	validator     *validator.Validate
}

// NewHandler constructs the payments handler. webhookKey authenticates
// provider callbacks; the provider signs them with base64(key + ":"),
// the same digest the outbound client sends.
func NewHandler(logger *slog.Logger, service *Service, webhookKey string) *Handler {
	return &Handler{
		logger:        logger,
		service:       service,
		webhookDigest: base64.StdEncoding.EncodeToString([]byte(webhookKey + ":")),
		validator:     validator.New(),
	}
}

// MountRoutes registers payment routes. The webhook is public at the gate
// but verifies the provider key itself.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Post("/webhook", h.handleWebhook)
	r.Get("/{transaction_id}", h.handleStatus)
}

type createRequest struct {
	ContributionID int64 `json:"contribution_id" validate:"required,gt=0"`
	Amount         int64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	payment, err := h.service.Create(r.Context(), req.ContributionID, req.Amount)
	if err != nil {
		h.logger.Error("create payment", slog.Any("error", err))
		shared.RespondStoreError(w, err, "payment")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, payment)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transaction_id")
	if transactionID == "" {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "missing transaction id")
		return
	}
	payment, err := h.service.GetStatus(r.Context(), transactionID)
	if err != nil {
		shared.RespondStoreError(w, err, "payment")
		return
	}
	shared.RespondJSON(w, http.StatusOK, payment)
}

type webhookRequest struct {
	Method string `json:"method" validate:"required"`
	Params struct {
		ID string `json:"id" validate:"required"`
	} `json:"params"`
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if !auth.SecureCompare(r.Header.Get("X-Auth"), h.webhookDigest) {
		shared.RespondError(w, http.StatusUnauthorized, "INVALID_CREDENTIAL", "invalid webhook key")
		return
	}

	var req webhookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.service.ApplyWebhook(r.Context(), req.Params.ID, req.Method); err != nil {
		if errors.Is(err, ErrUnknownWebhookMethod) {
			shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown webhook method")
			return
		}
		shared.RespondStoreError(w, err, "payment")
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
