package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/pkordes/fuel-tracker/backend/internal/ratelimit"
)

// NewRateLimitHandler returns a middleware that admits at most rule.Limit
// requests per client within rule.Window, keyed by limiter.ClientAddr.
// Throttled requests get 429 with rule.Message and a Retry-After header.
// Counted responses carry RateLimit-Limit, RateLimit-Remaining and
// RateLimit-Reset (the unix time the current window ends).
//
// A failing counter does not block traffic: the request is let through and
// the error is logged.
func NewRateLimitHandler(limiter *ratelimit.Limiter, rule ratelimit.Rule, log *slog.Logger) func(http.Handler) http.Handler {
	rl := httprate.NewRateLimiter(rule.Limit, rule.Window,
		httprate.WithKeyFuncs(limiter.KeyFunc()),
		httprate.WithLimitCounter(failOpenCounter{
			LimitCounter: limiter.Counter(rule),
			rule:         rule.Name,
			log:          log,
		}),
		httprate.WithResponseHeaders(httprate.ResponseHeaders{
			Limit:      "RateLimit-Limit",
			Remaining:  "RateLimit-Remaining",
			Reset:      "RateLimit-Reset",
			RetryAfter: "Retry-After",
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, rule.Message)
		}),
		httprate.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "rate limiter failed", "rule", rule.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := rl.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rule.SkipReads && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

// failOpenCounter reads a broken counter as empty and drops failed
// increments, logging both.
type failOpenCounter struct {
	httprate.LimitCounter
	rule string
	log  *slog.Logger
}

func (c failOpenCounter) Increment(key string, window time.Time) error {
	return c.IncrementBy(key, window, 1)
}

func (c failOpenCounter) IncrementBy(key string, window time.Time, amount int) error {
	if err := c.LimitCounter.IncrementBy(key, window, amount); err != nil {
		c.log.Warn("rate limiter unavailable; admitting request", "rule", c.rule, "error", err)
	}
	return nil
}

func (c failOpenCounter) Get(key string, current, previous time.Time) (int, int, error) {
	cur, prev, err := c.LimitCounter.Get(key, current, previous)
	if err != nil {
		c.log.Warn("rate limiter unavailable; admitting request", "rule", c.rule, "error", err)
		return 0, 0, nil
	}
	return cur, prev, nil
}
