package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	schemeBasic  = "Basic"
	schemeBearer = "Bearer"
)

// SecureCompare reports whether two strings are equal without leaking the
// position of the first mismatch. The payment webhook check shares it.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SplitAuthorization separates the Basic and Bearer parts of an
// Authorization header. The combined-auth variant sends both credentials
// comma separated in one header value.
func SplitAuthorization(header string) (basic, bearer string) {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, schemeBasic+" "):
			basic = part
		case strings.HasPrefix(part, schemeBearer+" "):
			bearer = part
		}
	}
	return basic, bearer
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Verifier validates presented credentials against configured secret
// material. It is stateless apart from the revocation lookup.
type Verifier struct {
	apiUser string
	apiPass string
	secret  []byte
	revoked RevocationChecker
}

// NewVerifier constructs a Verifier. revoked may be nil when no revocation
// store is wired (tests).
func NewVerifier(apiUser, apiPass, jwtSecret string, revoked RevocationChecker) *Verifier {
	return &Verifier{
		apiUser: apiUser,
		apiPass: apiPass,
		secret:  []byte(jwtSecret),
		revoked: revoked,
	}
}

// VerifyBasic validates the app-level credential. The argument is the Basic
// portion of the Authorization header ("Basic <base64>") or empty.
func (v *Verifier) VerifyBasic(credential string) error {
	if credential == "" {
		return ErrMissingCredential
	}
	payload, ok := strings.CutPrefix(credential, schemeBasic+" ")
	if !ok {
		return ErrInvalidCredential
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return ErrInvalidCredential
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return ErrInvalidCredential
	}
	userOK := SecureCompare(username, v.apiUser)
	passOK := SecureCompare(password, v.apiPass)
	if !userOK || !passOK {
		return ErrInvalidCredential
	}
	return nil
}

// VerifyBearer validates a bearer token: signature, expiry, revocation. The
// claims are trusted only after this returns nil error.
func (v *Verifier) VerifyBearer(ctx context.Context, credential string) (*Claims, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}
	raw, ok := strings.CutPrefix(credential, schemeBearer+" ")
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if v.revoked != nil && claims.ID != "" {
		revoked, err := v.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("auth: revocation lookup: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}
