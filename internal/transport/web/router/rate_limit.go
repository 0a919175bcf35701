package router

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"github.com/indievibes/vibefeed/internal/ratelimit"
)

// rateLimitMiddleware admits requests through limiter keyed by client address.
// Rejected requests never reach next.
func rateLimitMiddleware(limiter *ratelimit.Limiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := ratelimit.ClientKey(r)
			decision := limiter.Admit(clientKey)
			m.ObserveRateLimitDecision(decision.Allowed)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			logger := domain.LoggerFromContext(ctx)
			logger.InfoContext(ctx, "request rejected by rate limiter", "client", clientKey)

			w.Header().Set("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = fmt.Fprintf(w, `{"message":%q}`, domain.ErrRateLimited.Error())
		})
	}
}
