package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: fixed window in-process. Para single-node y tests.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu   sync.Mutex
	hits map[string]*window
}

type window struct {
	start time.Time
	count int64
}

func NewMemoryLimiter(max int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: win,
		hits:   make(map[string]*window),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	start := now.Truncate(l.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.hits[key]
	if w == nil || !w.start.Equal(start) {
		w = &window{start: start}
		l.hits[key] = w
	}
	w.count++

	// limpieza oportunista de ventanas viejas
	if len(l.hits) > 1024 {
		for k, old := range l.hits {
			if !old.start.Equal(start) {
				delete(l.hits, k)
			}
		}
	}

	remaining := l.Max - w.count
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:     w.count <= l.Max,
		Remaining:   remaining,
		CurrentHits: w.count,
		WindowTTL:   start.Add(l.Window).Sub(now),
	}
	if !res.Allowed {
		res.RetryAfter = res.WindowTTL
	}
	return res, nil
}
