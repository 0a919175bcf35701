// Package ratelimit provides per-client fixed-window admission control for the
// endpoints that trigger similarity computation.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/indievibes/vibefeed/internal/domain"
)

const (
	DefaultWindow        = time.Minute
	DefaultLimit         = 60
	DefaultSweepInterval = 5 * time.Minute
)

// Record is the admission state for one client within the current window.
type Record struct {
	Count   int
	ResetAt time.Time
}

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the advertised wait for rejected clients; always the full window.
	RetryAfter time.Duration
}

type Config struct {
	Window        time.Duration
	Limit         int
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Window:        DefaultWindow,
		Limit:         DefaultLimit,
		SweepInterval: DefaultSweepInterval,
	}
}

type Option func(*Limiter)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// Limiter tracks request counts per client key. It is created once per serving
// process and shared by every rate-limited route.
type Limiter struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	records map[string]*Record
}

func New(config Config, opts ...Option) *Limiter {
	l := &Limiter{
		config:  config,
		now:     time.Now,
		records: make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Admit counts one request for clientKey and reports whether it may proceed.
func (l *Limiter) Admit(clientKey string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[clientKey]
	if !ok || !now.Before(rec.ResetAt) {
		l.records[clientKey] = &Record{Count: 1, ResetAt: now.Add(l.config.Window)}
		return Decision{Allowed: true, Remaining: l.config.Limit - 1}
	}

	if rec.Count < l.config.Limit {
		rec.Count++
		return Decision{Allowed: true, Remaining: l.config.Limit - rec.Count}
	}

	return Decision{Allowed: false, Remaining: 0, RetryAfter: l.config.Window}
}

// Sweep drops records whose window has elapsed and returns how many were removed.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, rec := range l.records {
		if !now.Before(rec.ResetAt) {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.config.Window
}

// Run sweeps stale records periodically until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) error {
	interval := l.config.SweepInterval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := domain.LoggerFromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				logger.DebugContext(ctx, "swept stale rate limit records", "removed", removed)
			}
		}
	}
}
