package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/internal/authtest"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/stretchr/testify/require"
)

// TestToken_NotLoggedIn returns ErrNotLoggedIn
func TestToken_NotLoggedIn(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.Token()
	require.ErrorIs(t, err, errors.ErrNotLoggedIn)

	_, ok := f.manager.ExpiresAt()
	require.False(t, ok)
}

// TestToken_OpaqueToken has no expiry
func TestToken_OpaqueToken(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.manager.Authenticate(context.Background(), authtest.ToResponse(anaResponse())))

	tok, err := f.manager.Token()
	require.NoError(t, err)
	require.Equal(t, testToken, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.True(t, tok.Expiry.IsZero())
}

// TestToken_JWTExpiry reads exp from an unverified JWT
func TestToken_JWTExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	f := setupTestFixture(t)
	require.NoError(t, f.manager.Authenticate(context.Background(), authmodel.Response{
		"access_token":  raw,
		"refresh_token": "r1",
	}))

	tok, err := f.manager.Token()
	require.NoError(t, err)
	require.True(t, exp.Equal(tok.Expiry))
	require.Equal(t, "r1", tok.RefreshToken)

	got, ok := f.manager.ExpiresAt()
	require.True(t, ok)
	require.True(t, exp.Equal(got))
}
