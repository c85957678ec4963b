// Package search coalesces keystroke-driven lookups: a lookup runs only after
// a fixed quiet period with no newer keystroke, so exactly one request is in
// flight per settled pause.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultQuiet is the pause that must elapse before a lookup proceeds.
	DefaultQuiet = 300 * time.Millisecond
	// MinQueryLen is the shortest query (after trimming) worth a lookup.
	MinQueryLen = 2
)

// Outcome classifies what a submitted keystroke should lead to.
type Outcome int

const (
	// Proceed: the quiet period settled and this query won; issue the lookup.
	Proceed Outcome = iota
	// Suppressed: the query is too short; hide any results immediately.
	Suppressed
	// Superseded: a newer keystroke (or cancellation) replaced this one.
	Superseded
)

// Debouncer serializes lookups for one input source. Each Submit cancels the
// previous pending one.
type Debouncer struct {
	quiet time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel chan struct{}
}

// NewDebouncer builds a debouncer with the given quiet period; zero or
// negative means DefaultQuiet.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Submit registers a keystroke and blocks until its fate is known. It returns
// the trimmed query with Proceed when the quiet period elapses and no newer
// keystroke arrived; Suppressed immediately for short queries; Superseded as
// soon as a newer keystroke lands or ctx is done. Any submission, including a
// short one, cancels the previously pending lookup.
func (d *Debouncer) Submit(ctx context.Context, query string) (string, Outcome) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	if d.cancel != nil {
		close(d.cancel)
	}
	done := make(chan struct{})
	d.cancel = done
	d.gen++
	mine := d.gen
	d.mu.Unlock()

	// characters, not bytes: "é" is one character
	if utf8.RuneCountInString(query) < MinQueryLen {
		return "", Suppressed
	}

	timer := time.NewTimer(d.quiet)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", Superseded
	case <-done:
		return "", Superseded
	case <-timer.C:
		d.mu.Lock()
		won := d.gen == mine
		d.mu.Unlock()
		if !won {
			return "", Superseded
		}
		return query, Proceed
	}
}

// registryTTL is how long a session's debouncer survives without a lookup
// before it is evicted.
const registryTTL = 30 * time.Minute

// Registry hands out one debouncer per key (per browser session in the web
// layer). Idle entries are evicted so the map stays bounded by active
// sessions.
type Registry struct {
	quiet time.Duration
	ttl   time.Duration
	now   func() time.Time

	mu sync.Mutex
	m  map[string]*registryEntry
}

type registryEntry struct {
	d        *Debouncer
	lastUsed time.Time
}

// NewRegistry builds a registry whose debouncers use the given quiet period.
func NewRegistry(quiet time.Duration) *Registry {
	return &Registry{quiet: quiet, ttl: registryTTL, now: time.Now, m: map[string]*registryEntry{}}
}

// Get returns the debouncer for key, creating it on first use. Each call also
// drops entries idle past the TTL.
func (r *Registry) Get(key string) *Debouncer {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.m {
		if k != key && now.Sub(e.lastUsed) > r.ttl {
			delete(r.m, k)
		}
	}

	e, ok := r.m[key]
	if !ok {
		e = &registryEntry{d: NewDebouncer(r.quiet)}
		r.m[key] = e
	}
	e.lastUsed = now
	return e.d
}

// Len reports the number of live debouncers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
