package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coverguard/coverguard/internal/cache"
)

// RateLimitConfig holds configuration for login rate limiting.
type RateLimitConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache
	// Enabled toggles the limiter. Disabled in tests and local dev.
	Enabled bool
	// RatePerMinute is the steady-state number of attempts allowed.
	RatePerMinute int
	// Burst is the bucket capacity for short spikes.
	Burst int
}

// RateLimitLogin returns middleware that limits login attempts per
// client IP. It protects the credential check from brute forcing;
// everything else on the site is unmetered.
func RateLimitLogin(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)

			result, err := cfg.Cache.CheckLoginRateLimit(r.Context(), ip, cfg.RatePerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("login rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				// Fail open - allow request
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("login rate limit exceeded",
					slog.String("ip", ip),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				http.Error(w, "Too many login attempts. Try again shortly.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers for proxied requests.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP (client IP)
		for i := range xff {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
