package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	audit     *shared.AuditLogger
	validator *validator.Validate
}

// NewHandler constructs a Handler. audit may be nil in tests.
func NewHandler(logger *slog.Logger, service *Service, audit *shared.AuditLogger) *Handler {
	return &Handler{logger: logger, service: service, audit: audit, validator: validator.New()}
}

// MountRoutes registers account routes under /users.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Get("/{id}/profile", h.handleProfile)
}

type userResponse struct {
	UserID         int64  `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	PhoneID        *int64 `json:"phone_id,omitempty"`
	EntrepreneurID *int64 `json:"entrepreneur_id,omitempty"`
	ContributorID  *int64 `json:"contributor_id,omitempty"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		UserID:         u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		PhoneID:        u.PhoneID,
		EntrepreneurID: u.EntrepreneurID,
		ContributorID:  u.ContributorID,
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id")
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "user")
		return
	}
	shared.RespondJSON(w, http.StatusOK, toUserResponse(user))
}

type updateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	PhoneID   *int64 `json:"phone_id,omitempty" validate:"omitempty,gt=0"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id")
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
	user, err := h.service.Update(r.Context(), id, UpdateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		PhoneID:   req.PhoneID,
	})
	if err != nil {
		h.logger.Error("update user", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondStoreError(w, err, "user")
		return
	}
	h.recordAudit(r, "update", id)
	shared.RespondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondStoreError(w, err, "user")
		return
	}
	h.recordAudit(r, "delete", id)
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

type profileResponse struct {
	UserID       int64                `json:"user_id"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name,omitempty"`
	Email        string               `json:"email,omitempty"`
	Phone        *ProfilePhone        `json:"phone,omitempty"`
	Entrepreneur *ProfileEntrepreneur `json:"entrepreneur,omitempty"`
	Contributor  *ProfileContributor  `json:"contributor,omitempty"`
	StartupIDs   []int64              `json:"startup_ids,omitempty"`
}

// redact trims the named fields before serialisation. The gate decides
// what a foreign caller may not see: the last name shrinks to its
// initial and the entrepreneur block collapses to its startup links.
func (p *profileResponse) redact(fields []string) {
	for _, f := range fields {
		switch f {
		case "last_name":
			p.LastName = abbreviate(p.LastName)
		case "email":
			p.Email = ""
		case "phone_number":
			p.Phone = nil
		case "entrepreneur":
			if p.Entrepreneur != nil {
				p.StartupIDs = p.Entrepreneur.StartupIDs
				p.Entrepreneur = nil
			}
		case "contributor":
			p.Contributor = nil
		}
	}
}

func abbreviate(name string) string {
	for _, r := range name {
		return string(r) + "."
	}
	return ""
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id")
		return
	}
	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		shared.RespondStoreError(w, err, "user")
		return
	}

	resp := profileResponse{
		UserID:       profile.User.ID,
		FirstName:    profile.User.FirstName,
		LastName:     profile.User.LastName,
		Email:        profile.User.Email,
		Phone:        profile.Phone,
		Entrepreneur: profile.Entrepreneur,
		Contributor:  profile.Contributor,
	}
	decision := auth.DecisionFromContext(r.Context())
	resp.redact(decision.Redactions)
	shared.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) recordAudit(r *http.Request, action string, id int64) {
	if h.audit == nil {
		return
	}
	principal := auth.PrincipalFromContext(r.Context())
	if err := h.audit.Record(r.Context(), shared.AuditLog{
		ActorID:  principal.UserID,
		Action:   action,
		Entity:   "user",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		h.logger.Warn("audit user "+action, slog.Any("error", err))
	}
}
