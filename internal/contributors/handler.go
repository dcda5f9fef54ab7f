package contributors

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/identity"
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

// MountRoutes registers contributor routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type passportRequest struct {
	Series         string    `json:"series" validate:"required,max=5"`
	Number         string    `json:"number" validate:"required,max=10"`
	IssueDate      time.Time `json:"issue_date" validate:"required"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
}

type createRequest struct {
	Gender      string          `json:"gender" validate:"required,oneof=male female"`
	DateOfBirth time.Time       `json:"date_of_birth" validate:"required"`
	Passport    passportRequest `json:"passport" validate:"required"`
	Document    *string         `json:"agreement_document,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list contributors", slog.Any("error", err))
		shared.RespondStoreError(w, err, "contributor")
		return
	}
	if list == nil {
		list = []Contributor{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contributor id")
		return
	}
	contributor, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "contributor")
		return
	}
	shared.RespondJSON(w, http.StatusOK, contributor)
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

	input := CreateInput{
		UserID:      auth.PrincipalFromContext(r.Context()).UserID,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Passport: identity.Passport{
			Series:         req.Passport.Series,
			Number:         req.Passport.Number,
			IssueDate:      req.Passport.IssueDate,
			ExpirationDate: req.Passport.ExpirationDate,
		},
	}
	if req.Document != nil {
		input.Agreement = &identity.BankAgreement{Document: *req.Document}
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create contributor", slog.Any("error", err))
		shared.RespondStoreError(w, err, "contributor")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, created)
}

type updateRequest struct {
	Gender      string    `json:"gender" validate:"required,oneof=male female"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contributor id")
		return
	}
	var req updateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, Contributor{
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	}); err != nil {
		shared.RespondStoreError(w, err, "contributor")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contributor id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "contributor")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
