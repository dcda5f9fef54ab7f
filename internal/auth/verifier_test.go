package auth

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestVerifyBasic(t *testing.T) {
	v := NewVerifier("api", "secretpass", "jwtsecret", nil)

	assert.NoError(t, v.VerifyBasic(basicHeader("api", "secretpass")))
	assert.ErrorIs(t, v.VerifyBasic(""), ErrMissingCredential)
	assert.ErrorIs(t, v.VerifyBasic(basicHeader("api", "wrong")), ErrInvalidCredential)
	assert.ErrorIs(t, v.VerifyBasic(basicHeader("other", "secretpass")), ErrInvalidCredential)
	assert.ErrorIs(t, v.VerifyBasic("Basic not-base64!!"), ErrInvalidCredential)
	assert.ErrorIs(t, v.VerifyBasic("Bearer abc"), ErrInvalidCredential)
	// Payload without a colon separator.
	assert.ErrorIs(t, v.VerifyBasic("Basic "+base64.StdEncoding.EncodeToString([]byte("apisecret"))), ErrInvalidCredential)
}

func TestSplitAuthorization(t *testing.T) {
	basic, bearer := SplitAuthorization("Basic abc, Bearer xyz")
	assert.Equal(t, "Basic abc", basic)
	assert.Equal(t, "Bearer xyz", bearer)

	basic, bearer = SplitAuthorization("Bearer xyz")
	assert.Empty(t, basic)
	assert.Equal(t, "Bearer xyz", bearer)

	basic, bearer = SplitAuthorization("")
	assert.Empty(t, basic)
	assert.Empty(t, bearer)
}

func TestVerifyBearerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("jwtsecret", time.Hour)
	v := NewVerifier("api", "pass", "jwtsecret", nil)

	entID := int64(3)
	token, expiresAt, err := issuer.Issue(&User{ID: 5, Role: "user", EntrepreneurID: &entID})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := v.VerifyBearer(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	require.NotNil(t, claims.EntrepreneurID)
	assert.Equal(t, entID, *claims.EntrepreneurID)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyBearerRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("othersecret", time.Hour)
	v := NewVerifier("api", "pass", "jwtsecret", nil)

	token, _, err := issuer.Issue(&User{ID: 5, Role: "user"})
	require.NoError(t, err)

	_, err = v.VerifyBearer(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyBearerRejectsExpired(t *testing.T) {
	// Correctly signed but already past its validity window.
	issuer := NewTokenIssuer("jwtsecret", -time.Minute)
	v := NewVerifier("api", "pass", "jwtsecret", nil)

	token, _, err := issuer.Issue(&User{ID: 5, Role: "user"})
	require.NoError(t, err)

	_, err = v.VerifyBearer(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyBearerMissingOrMalformed(t *testing.T) {
	v := NewVerifier("api", "pass", "jwtsecret", nil)

	_, err := v.VerifyBearer(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = v.VerifyBearer(context.Background(), "Bearer not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.VerifyBearer(context.Background(), "Basic abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyBearerRevoked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	revoked := NewRevocationList(client)

	issuer := NewTokenIssuer("jwtsecret", time.Hour)
	v := NewVerifier("api", "pass", "jwtsecret", revoked)

	token, expiresAt, err := issuer.Issue(&User{ID: 5, Role: "user"})
	require.NoError(t, err)

	claims, err := v.VerifyBearer(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	require.NoError(t, revoked.Revoke(context.Background(), claims.ID, expiresAt))

	_, err = v.VerifyBearer(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("abc", "abc"))
	assert.False(t, SecureCompare("abc", "abd"))
	assert.False(t, SecureCompare("abc", "abcd"))
	assert.True(t, SecureCompare("", ""))
}
