package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the bearer token payload. The embedded identifiers are hints for
// clients; the resolver re-reads the user record and never trusts the
// entrepreneur/contributor links from the token.
type Claims struct {
	UserID         int64  `json:"userId"`
	Role           string `json:"role"`
	EntrepreneurID *int64 `json:"entrepreneurId"`
	ContributorID  *int64 `json:"contributorId"`
	jwt.RegisteredClaims
}

// TokenIssuer signs bearer tokens with the process-wide secret. The secret
// is injected at startup; nothing reads it from ambient state.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs a TokenIssuer with a fixed validity window.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL exposes the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the user, stamping a jti so logout can revoke it.
func (i *TokenIssuer) Issue(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		UserID:         user.ID,
		Role:           user.Role,
		EntrepreneurID: user.EntrepreneurID,
		ContributorID:  user.ContributorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}
