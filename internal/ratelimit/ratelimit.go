// Package ratelimit defines the admission rules and the per-client keys and
// counters the HTTP gates are built on. Windows are httprate sliding-window
// counters, kept in process or in Redis.
package ratelimit

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/httprate"
)

// Rule is one route class: at most Limit admitted requests per client within
// any Window-long interval. Only admitted requests are counted, so a client
// that keeps retrying while throttled is let back in once its earlier
// admitted requests age out of the window.
type Rule struct {
	Name    string
	Limit   int
	Window  time.Duration
	Message string
	// SkipReads exempts GET and HEAD requests.
	SkipReads bool
}

var (
	LoginRule = Rule{
		Name:    "login",
		Limit:   5,
		Window:  15 * time.Minute,
		Message: "Too many login attempts. Please try again after 15 minutes.",
	}
	RegisterRule = Rule{
		Name:    "register",
		Limit:   5,
		Window:  time.Hour,
		Message: "Too many registration attempts. Please try again after 1 hour.",
	}
	WriteRule = Rule{
		Name:      "write",
		Limit:     100,
		Window:    time.Minute,
		Message:   "Too many requests, please slow down",
		SkipReads: true,
	}
)

// CounterFunc returns the counter backing one rule. Each call must return a
// fresh counter; httprate configures it with the rule's limit and window.
type CounterFunc func(Rule) httprate.LimitCounter

// Limiter holds what every gate shares: where counts live and which peers may
// speak for a client.
type Limiter struct {
	counters CounterFunc
	proxies  []netip.Prefix
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithCounters moves counts out of process, for example to Redis.
func WithCounters(f CounterFunc) Option {
	return func(l *Limiter) { l.counters = f }
}

// WithTrustedProxies lets peers inside these prefixes forward the client
// address in X-Forwarded-For or X-Real-IP.
func WithTrustedProxies(p []netip.Prefix) Option {
	return func(l *Limiter) { l.proxies = p }
}

// NewLimiter returns a Limiter with in-process counters and no trusted
// proxies unless configured otherwise.
func NewLimiter(opts ...Option) *Limiter {
	l := &Limiter{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Counter returns a new counter for rule.
func (l *Limiter) Counter(rule Rule) httprate.LimitCounter {
	if l.counters == nil {
		return httprate.NewLocalLimitCounter(rule.Window)
	}
	return l.counters(rule)
}

// KeyFunc keys requests by ClientAddr.
func (l *Limiter) KeyFunc() httprate.KeyFunc {
	return func(r *http.Request) (string, error) {
		return l.ClientAddr(r), nil
	}
}
