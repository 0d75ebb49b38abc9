package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coverguard/coverguard/internal/auth"
	"github.com/coverguard/coverguard/internal/session"
)

// SessionConfig holds dependencies for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions *session.Manager
}

// RequireSession gates a route behind a valid session cookie.
// Requests without a resolvable session are redirected to the login
// page; resolved requests carry the account ID in the context.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)

			accountID, err := cfg.Sessions.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					cfg.Logger.Error("session lookup failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				// Stale or missing cookie - clear it and send the
				// browser back to the login page.
				session.ClearCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := auth.ContextWithAccountID(r.Context(), accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
