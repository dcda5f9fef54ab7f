package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// Service wraps registration and login rules.
type Service struct {
	repo    Repository
	issuer  *TokenIssuer
	revoked *RevocationList
}

// NewService constructs a Service. revoked may be nil in tests.
func NewService(repo Repository, issuer *TokenIssuer, revoked *RevocationList) *Service {
	return &Service{repo: repo, issuer: issuer, revoked: revoked}
}

// RegisterInput carries the fields accepted at registration. The role is
// always RoleUser; admins are promoted out of band.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	PhoneID   *int64
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	user := &User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         string(policy.RoleUser),
		PhoneID:      in.PhoneID,
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login validates email/password credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, shared.ErrInvalidCredentials
	}
	return s.issuer.Issue(user)
}

// Logout revokes the presented token for the rest of its validity window.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if s.revoked == nil || claims == nil || claims.ID == "" {
		return nil
	}
	expiresAt := time.Now().Add(s.issuer.TTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.revoked.Revoke(ctx, claims.ID, expiresAt)
}
