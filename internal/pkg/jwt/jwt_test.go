package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "09123456789")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims[ClaimUserID])
	assert.Equal(t, "09123456789", claims[ClaimPhone])
	assert.Equal(t, TokenTypeAccess, claims[ClaimType])

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	userID, err := UserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, expiresAt, ExpiresAtFromContext(ctx))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, _, err := issuer.GenerateAccessToken("user-1", "09123456789")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}

func TestUserIDFromContext_NoToken(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Zero(t, ExpiresAtFromContext(context.Background()))
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old", now.Add(-time.Minute).Unix())
	svc.RevokeToken("current", now.Add(time.Hour).Unix())

	assert.True(t, svc.IsTokenRevoked("current"))
	assert.False(t, svc.IsTokenRevoked("never"))

	// Revoking again prunes entries that already expired.
	svc.RevokeToken("another", now.Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("current"))
}
