package auth

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// Handler wires the register/login/logout endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	audit     *shared.AuditLogger
	validator *validator.Validate
}

// NewHandler constructs a Handler. audit may be nil in tests.
func NewHandler(logger *slog.Logger, service *Service, audit *shared.AuditLogger) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		audit:     audit,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes under /users.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	PhoneID   *int64 `json:"phone_id,omitempty" validate:"omitempty,gt=0"`
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

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		PhoneID:   req.PhoneID,
	})
	if err != nil {
		h.logger.Error("register user", slog.Any("error", err))
		shared.RespondStoreError(w, err, "user")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, userResponse{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		PhoneID:   user.PhoneID,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	token, expiresAt, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondError(w, http.StatusUnauthorized, "INVALID_CREDENTIAL", "invalid credentials")
		return
	}
	shared.RespondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if err := h.service.Logout(r.Context(), claims); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if h.audit != nil && claims != nil {
		if err := h.audit.Record(r.Context(), shared.AuditLog{
			ActorID:  claims.UserID,
			Action:   "logout",
			Entity:   "user",
			EntityID: strconv.FormatInt(claims.UserID, 10),
		}); err != nil {
			h.logger.Warn("audit logout", slog.Any("error", err))
		}
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
