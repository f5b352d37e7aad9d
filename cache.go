package sketchfolio

import (
	"math"
	"sync"
	"time"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/views"
)

// maxCachedLayouts bounds the number of (width, filter) snapshots kept.
// Widths come from clients, so the key space is unbounded otherwise.
const maxCachedLayouts = 512

type layoutKey struct {
	width  int
	filter gallery.Filter
}

type layoutEntry struct {
	view    views.GalleryView
	fetched time.Time
}

// LayoutCache is an in-memory TTL cache of computed gallery views keyed by
// whole-pixel viewport width and filter.
type LayoutCache struct {
	mu      sync.RWMutex
	entries map[layoutKey]layoutEntry
	ttl     time.Duration
	build   func(width float64, f gallery.Filter) views.GalleryView
	now     func() time.Time
}

// NewLayoutCache creates a LayoutCache that computes misses with build.
func NewLayoutCache(build func(width float64, f gallery.Filter) views.GalleryView, ttl time.Duration) *LayoutCache {
	return &LayoutCache{
		entries: make(map[layoutKey]layoutEntry),
		ttl:     ttl,
		build:   build,
		now:     time.Now,
	}
}

func (c *LayoutCache) valid(e layoutEntry) bool {
	return c.now().Sub(e.fetched) < c.ttl
}

// Get returns the view for width and filter, computing it on a miss.
// It tries a read lock first; only takes a write lock if a rebuild is needed.
func (c *LayoutCache) Get(width float64, f gallery.Filter) views.GalleryView {
	key := layoutKey{width: int(math.Round(width)), filter: f}

	c.mu.RLock()
	e, ok := c.entries[key]
	if ok && c.valid(e) {
		c.mu.RUnlock()
		return e.view
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && c.valid(e) {
		return e.view
	}
	if len(c.entries) >= maxCachedLayouts {
		c.evictLocked()
	}
	v := c.build(float64(key.width), f)
	c.entries[key] = layoutEntry{view: v, fetched: c.now()}
	return v
}

// evictLocked drops expired entries, or everything if none had expired.
func (c *LayoutCache) evictLocked() {
	for k, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) >= maxCachedLayouts {
		clear(c.entries)
	}
}

// Invalidate clears the cache so the next read triggers a fresh build.
func (c *LayoutCache) Invalidate() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len reports the number of cached views.
func (c *LayoutCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
