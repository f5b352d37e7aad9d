package sketchfolio

import (
	"sync"
	"time"
)

// ConnLimiter rate-limits new live connections per IP address using a
// sliding window.
type ConnLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewConnLimiter creates a ConnLimiter that allows max connections per window.
func NewConnLimiter(max int, window time.Duration) *ConnLimiter {
	return newConnLimiter(max, window, time.Now)
}

func newConnLimiter(max int, window time.Duration, now func() time.Time) *ConnLimiter {
	l := &ConnLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    now,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *ConnLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := l.now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			if kept := prune(hits, cutoff); len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow reports whether ip is under the limit and, if so, records the
// connection.
func (l *ConnLimiter) Allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Stop ends the background cleanup.
func (l *ConnLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
