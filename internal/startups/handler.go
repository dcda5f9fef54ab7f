package startups

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/policy"
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

// MountRoutes registers startup routes. The catalog is public; the rest
// sit behind the gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/catalog", h.handleCatalog)
	r.Get("/{id}", h.handleGet)
	r.Get("/{id}/details", h.handleDetails)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type startupRequest struct {
	Title        string     `json:"title" validate:"required,max=255"`
	ActiveStatus bool       `json:"active_status"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description" validate:"required"`
	VideoLink    *string    `json:"video_link,omitempty" validate:"omitempty,url"`
	Rating       float64    `json:"rating" validate:"gte=0,lte=5"`
	Type         string     `json:"type" validate:"required,max=50"`
	Batch        *string    `json:"batch,omitempty" validate:"omitempty,max=20"`
	CategoryID   int64      `json:"category_id" validate:"required,gt=0"`
	RegionID     int64      `json:"region_id" validate:"required,gt=0"`
}

func (req startupRequest) toModel() Startup {
	return Startup{
		Title:        req.Title,
		ActiveStatus: req.ActiveStatus,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Description:  req.Description,
		VideoLink:    req.VideoLink,
		Rating:       req.Rating,
		Type:         req.Type,
		Batch:        req.Batch,
		CategoryID:   req.CategoryID,
		RegionID:     req.RegionID,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list startups", slog.Any("error", err))
		shared.RespondStoreError(w, err, "startup")
		return
	}
	if list == nil {
		list = []Startup{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Catalog(r.Context())
	if err != nil {
		h.logger.Error("startup catalog", slog.Any("error", err))
		shared.RespondStoreError(w, err, "startup")
		return
	}
	if catalog == nil {
		catalog = []CatalogEntry{}
	}
	shared.RespondJSON(w, http.StatusOK, catalog)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid startup id")
		return
	}
	startup, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "startup")
		return
	}
	shared.RespondJSON(w, http.StatusOK, startup)
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid startup id")
		return
	}
	principal := auth.PrincipalFromContext(r.Context())
	viewer := Viewer{UserID: principal.UserID, Admin: principal.Role == policy.RoleAdmin}
	details, err := h.service.GetDetails(r.Context(), id, viewer)
	if err != nil {
		shared.RespondStoreError(w, err, "startup")
		return
	}
	shared.RespondJSON(w, http.StatusOK, details)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req startupRequest
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
		h.logger.Error("create startup", slog.Any("error", err))
		shared.RespondStoreError(w, err, "startup")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid startup id")
		return
	}
	var req startupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, req.toModel()); err != nil {
		shared.RespondStoreError(w, err, "startup")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid startup id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "startup")
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
