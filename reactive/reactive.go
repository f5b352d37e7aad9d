// Package reactive is a small pull-based signal graph: writable signals carry
// a version, and computed values re-evaluate on read when any declared input
// has moved on since the last evaluation.
package reactive

import "sync"

// Source is anything a Computed can depend on.
type Source interface {
	// Version increases every time the observable value changes.
	Version() uint64
}

// Signal is a writable value.
type Signal[T any] struct {
	mu    sync.RWMutex
	v     T
	ver   uint64
	equal func(a, b T) bool
}

// NewSignal returns a signal where every Set counts as a change.
func NewSignal[T any](v T) *Signal[T] {
	return &Signal[T]{v: v, ver: 1}
}

// NewValue returns a signal that ignores writes of an equal value.
func NewValue[T comparable](v T) *Signal[T] {
	return &Signal[T]{v: v, ver: 1, equal: func(a, b T) bool { return a == b }}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Set stores v and reports whether dependents were invalidated.
func (s *Signal[T]) Set(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.equal != nil && s.equal(s.v, v) {
		return false
	}
	s.v = v
	s.ver++
	return true
}

// Update applies fn to the current value and stores the result.
func (s *Signal[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.v)
	if s.equal != nil && s.equal(s.v, next) {
		return false
	}
	s.v = next
	s.ver++
	return true
}

// Version implements Source.
func (s *Signal[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ver
}

// Computed is a memoised derivation over a fixed set of sources.
type Computed[T any] struct {
	mu    sync.RWMutex
	fn    func() T
	deps  []Source
	seen  []uint64
	v     T
	valid bool
	runs  int
}

// NewComputed declares fn as a function of deps. fn must only read values
// reachable from deps; anything else is not tracked.
func NewComputed[T any](fn func() T, deps ...Source) *Computed[T] {
	return &Computed[T]{fn: fn, deps: deps, seen: make([]uint64, len(deps))}
}

func (c *Computed[T]) fresh() bool {
	if !c.valid {
		return false
	}
	for i, d := range c.deps {
		if d.Version() != c.seen[i] {
			return false
		}
	}
	return true
}

// Get returns the memoised value, re-evaluating when an input changed.
// It tries a read lock first and only takes the write lock to recompute.
func (c *Computed[T]) Get() T {
	c.mu.RLock()
	if c.fresh() {
		v := c.v
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fresh() {
		return c.v
	}
	for i, d := range c.deps {
		c.seen[i] = d.Version()
	}
	c.v = c.fn()
	c.valid = true
	c.runs++
	return c.v
}

// Version implements Source so computed values can be chained. Each input's
// version is monotonic, so their sum is too.
func (c *Computed[T]) Version() uint64 {
	var sum uint64
	for _, d := range c.deps {
		sum += d.Version()
	}
	return sum
}

// Runs reports how many times the derivation has been evaluated.
func (c *Computed[T]) Runs() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runs
}
