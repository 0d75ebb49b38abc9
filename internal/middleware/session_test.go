package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coverguard/coverguard/internal/auth"
	"github.com/coverguard/coverguard/internal/session"
)

// stubTokenStore is an in-memory token store for middleware tests.
type stubTokenStore struct {
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) SetSession(_ context.Context, token, accountID string, _ time.Duration) error {
	s.tokens[token] = accountID
	return nil
}

func (s *stubTokenStore) GetSession(_ context.Context, token string) (string, error) {
	return s.tokens[token], nil
}

func (s *stubTokenStore) DeleteSession(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func TestRequireSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newStubTokenStore()
	mgr := session.NewManager(store, time.Hour)

	token, err := mgr.Issue(context.Background(), "acct-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var gotAccountID string
	handler := RequireSession(SessionConfig{Logger: logger, Sessions: mgr})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAccountID = auth.AccountIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	t.Run("valid cookie passes through with account ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotAccountID != "acct-123" {
			t.Errorf("account ID = %q, want %q", gotAccountID, "acct-123")
		}
	})

	t.Run("missing cookie redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("Location = %q, want %q", loc, "/login")
		}
	})

	t.Run("unknown token redirects and clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{
			Name:  session.CookieName,
			Value: "0000000000000000000000000000000000000000000000000000000000000000",
		})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}

		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == session.CookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("expected session cookie to be cleared")
		}
	})
}
