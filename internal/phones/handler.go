package phones

import (
	"log/slog"
	"net/http"
	"strconv"

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

// MountRoutes registers phone routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type phoneRequest struct {
	CountryCode        string `json:"country_code" validate:"required,max=5"`
	MobileOperatorCode string `json:"mobile_operator_code" validate:"required,max=5"`
	PhoneNumber        string `json:"phone_number" validate:"required,max=15"`
}

func (p phoneRequest) toModel() Phone {
	return Phone{
		CountryCode:        p.CountryCode,
		MobileOperatorCode: p.MobileOperatorCode,
		PhoneNumber:        p.PhoneNumber,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list phones", slog.Any("error", err))
		shared.RespondStoreError(w, err, "phone")
		return
	}
	if list == nil {
		list = []Phone{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid phone id")
		return
	}
	phone, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "phone")
		return
	}
	shared.RespondJSON(w, http.StatusOK, phone)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("create phone", slog.Any("error", err))
		shared.RespondStoreError(w, err, "phone")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid phone id")
		return
	}
	var req phoneRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, req.toModel()); err != nil {
		shared.RespondStoreError(w, err, "phone")
		return
	}
	updated := req.toModel()
	updated.ID = id
	shared.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid phone id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "phone")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
