package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// RateLimiter throttles a route per caller. Authenticated callers are keyed by
// user id, anonymous ones by remote address.
type RateLimiter struct {
	repo  repository.RateLimitRepository
	scope string
}

func NewRateLimiter(repo repository.RateLimitRepository, scope string) *RateLimiter {
	return &RateLimiter{repo: repo, scope: scope}
}

func (l *RateLimiter) Limit(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())
		key := l.scope + ":" + callerKey(r)

		allowed, remaining, retryAfter, err := l.repo.CheckRateLimit(r.Context(), key)
		if err != nil {
			// Fail open.
			logger.Error("Rate limit check failed", slog.String("scope", l.scope), slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			logger.Warn("Rate limit exceeded", slog.String("scope", l.scope), slog.Int("retryAfter", retryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, errors.TooManyRequestsError("Too many requests, try again later"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func callerKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return "user:" + claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
