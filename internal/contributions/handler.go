package contributions

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers contribution routes. The startup listing and the
// summary are exempt from the bearer requirement for the bank integration.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/summary", h.handleSummary)
	r.Get("/startup/{id}", h.handleListByStartup)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type contributionRequest struct {
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	StartupID     int64      `json:"startup_id" validate:"required,gt=0"`
	ContributorID int64      `json:"contributor_id" validate:"required,gt=0"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list contributions", slog.Any("error", err))
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	if list == nil {
		list = []Contribution{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleListByStartup(w http.ResponseWriter, r *http.Request) {
	startupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid startup id")
		return
	}
	list, err := h.service.ListByStartup(r.Context(), startupID)
	if err != nil {
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	if list == nil {
		list = []Contribution{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contribution id")
		return
	}
	contribution, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	shared.RespondJSON(w, http.StatusOK, contribution)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), Contribution{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Amount:        req.Amount,
		StartupID:     req.StartupID,
		ContributorID: req.ContributorID,
	})
	if err != nil {
		h.logger.Error("create contribution", slog.Any("error", err))
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contribution id")
		return
	}
	var req contributionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, Contribution{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Amount:    req.Amount,
	}); err != nil {
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contribution id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("contribution summary", slog.Any("error", err))
		shared.RespondStoreError(w, err, "contribution")
		return
	}
	if summary == nil {
		summary = []SummaryRow{}
	}
	shared.RespondJSON(w, http.StatusOK, summary)
}
