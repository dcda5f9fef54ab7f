package categories

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

// MountRoutes registers category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		shared.RespondStoreError(w, err, "category")
		return
	}
	if list == nil {
		list = []Category{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id")
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "category")
		return
	}
	shared.RespondJSON(w, http.StatusOK, category)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), Category{Name: req.Name})
	if err != nil {
		h.logger.Error("create category", slog.Any("error", err))
		shared.RespondStoreError(w, err, "category")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id")
		return
	}
	var req categoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, Category{Name: req.Name}); err != nil {
		shared.RespondStoreError(w, err, "category")
		return
	}
	shared.RespondJSON(w, http.StatusOK, Category{ID: id, Name: req.Name})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "category")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
