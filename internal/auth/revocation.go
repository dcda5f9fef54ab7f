package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "token:revoked:"

// RevocationList is a Redis-backed token denylist. Entries live only as long
// as the token they block could still verify, so the list stays bounded.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList constructs a RevocationList.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke blocks a token id until its expiry.
func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id is on the denylist.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := l.client.Get(ctx, revocationKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ RevocationChecker = (*RevocationList)(nil)
