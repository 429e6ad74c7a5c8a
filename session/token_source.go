package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Manager)(nil)

// Token exposes the session as an oauth2 token so it can drive
// oauth2.NewClient. Expiry is filled from the JWT exp claim when present.
func (m *Manager) Token() (*oauth2.Token, error) {
	s := m.State()
	if !s.LoggedIn {
		return nil, errors.ErrNotLoggedIn
	}
	t := &oauth2.Token{
		AccessToken:  s.Token,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
	}
	if exp, ok := jwtExpiry(s.Token); ok {
		t.Expiry = exp
	}
	return t, nil
}

// ExpiresAt returns the exp claim of the access token. The signature is not
// verified; the server remains the authority on validity.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.RLock()
	token := m.state.Token
	m.mu.RUnlock()
	return jwtExpiry(token)
}

func jwtExpiry(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
