package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dreamteam-fund/dreamteam/internal/policy"
)

// Authentication failures. All of them terminate the request with a 401;
// they are never retried.
var (
	// ErrMissingCredential indicates no usable credential was presented.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential indicates the app-level Basic pair did not match.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidToken indicates a malformed, unsigned or revoked bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates a well-formed token past its validity window.
	ErrTokenExpired = errors.New("token expired")
	// ErrUnknownUser indicates valid claims referencing a deleted user. The
	// resolved identity is missing, not the resource, so it maps to 401.
	ErrUnknownUser = errors.New("unknown user")
)

// ErrorCode returns the stable machine-checkable code for an auth error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "MISSING_CREDENTIAL"
	case errors.Is(err, ErrInvalidCredential):
		return "INVALID_CREDENTIAL"
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	case errors.Is(err, ErrUnknownUser):
		return "UNKNOWN_USER"
	default:
		return "INTERNAL"
	}
}

// User is the account record backing both login and identity resolution.
type User struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Role           string
	PhoneID        *int64
	EntrepreneurID *int64
	ContributorID  *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type principalContextKey struct{}

type claimsContextKey struct{}

type decisionContextKey struct{}

// ContextWithPrincipal stores the resolved principal in context.
func ContextWithPrincipal(ctx context.Context, p policy.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal; the zero value doubles as the
// anonymous principal when the gate never ran.
func PrincipalFromContext(ctx context.Context) policy.Principal {
	p, ok := ctx.Value(principalContextKey{}).(policy.Principal)
	if !ok {
		return policy.Anonymous()
	}
	return p
}

// ContextWithClaims stores the verified token claims (logout needs the jti).
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext extracts the verified claims, if any.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return c
}

// ContextWithDecision stores the access decision for downstream redaction.
func ContextWithDecision(ctx context.Context, d policy.Decision) context.Context {
	return context.WithValue(ctx, decisionContextKey{}, d)
}

// DecisionFromContext extracts the access decision.
func DecisionFromContext(ctx context.Context) policy.Decision {
	d, ok := ctx.Value(decisionContextKey{}).(policy.Decision)
	if !ok {
		return policy.Decision{Allow: true}
	}
	return d
}
