// Package session implements the authentication gate: an opaque token
// carried in a cookie, bound server-side to an account ID. A request is
// either anonymous or authenticated; there is nothing in between.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coverguard/coverguard/internal/auth"
)

// CookieName is the session cookie set on successful login.
const CookieName = "cg_session"

// ErrNoSession is returned when a token resolves to no live session.
var ErrNoSession = errors.New("no active session")

// TokenStore persists session tokens. Implemented by cache.Cache.
type TokenStore interface {
	SetSession(ctx context.Context, token, accountID string, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// Manager issues, resolves, and revokes sessions.
type Manager struct {
	store TokenStore
	ttl   time.Duration
}

// NewManager creates a session Manager. Sessions live for ttl; expiry
// is enforced by the store, so an idle session lapses back to anonymous
// without any explicit logout.
func NewManager(store TokenStore, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for the account and returns the opaque token.
func (m *Manager) Issue(ctx context.Context, accountID string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	if err := m.store.SetSession(ctx, token, accountID, m.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve maps a token to the account ID it was issued for.
// Returns ErrNoSession for unknown, expired, or malformed tokens.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if !auth.ValidTokenFormat(token) {
		return "", ErrNoSession
	}

	accountID, err := m.store.GetSession(ctx, token)
	if err != nil {
		return "", err
	}
	if accountID == "" {
		return "", ErrNoSession
	}

	return accountID, nil
}

// Revoke deletes the session, transitioning the holder back to
// anonymous. Revoking an unknown token is not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if !auth.ValidTokenFormat(token) {
		return nil
	}
	return m.store.DeleteSession(ctx, token)
}

// SetCookie writes the session cookie on a response.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on a response.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns empty string when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
