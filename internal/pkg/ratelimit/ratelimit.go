package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultLimit  = 30
	DefaultWindow = time.Minute
)

// Rule is a fixed-window quota.
type Rule struct {
	Limit  int
	Window time.Duration
}

func (r Rule) withDefaults() Rule {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Window <= 0 {
		r.Window = DefaultWindow
	}
	return r
}

// Decision is the outcome of a Check. Reset is the time left in the
// current window; RetryAfter equals Reset when the request is rejected.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Duration
	RetryAfter time.Duration
}

type window struct {
	start time.Time
	count int
}

// Limiter keeps per-key counters in process memory. Counters are not shared
// between instances and reset on restart.
type Limiter struct {
	mu      sync.Mutex
	windows *cache.Cache
	now     func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		windows: cache.New(DefaultWindow, 5*time.Minute),
		now:     time.Now,
	}
}

// Check counts one request against key and reports whether it fits rule.
// It only decides; callers render headers and responses.
func (l *Limiter) Check(key string, rule Rule) Decision {
	rule = rule.withDefaults()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	var w *window
	if v, ok := l.windows.Get(key); ok {
		w = v.(*window)
	}
	if w == nil || now.Sub(w.start) >= rule.Window {
		w = &window{start: now}
		l.windows.Set(key, w, rule.Window)
	}
	w.count++

	reset := max(rule.Window-now.Sub(w.start), 0)
	d := Decision{
		Allowed:   w.count <= rule.Limit,
		Limit:     rule.Limit,
		Remaining: max(rule.Limit-w.count, 0),
		Reset:     reset,
	}
	if !d.Allowed {
		d.RetryAfter = reset
	}
	return d
}
