package sketchfolio

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/sketch"
)

const maxCachedPosters = 128

type posterKey struct {
	id     string
	w, h   int
	format string
}

func (k posterKey) String() string {
	return fmt.Sprintf("%s/%dx%d.%s", k.id, k.w, k.h, k.format)
}

// PosterCache renders each sketch once at native size and keeps the encoded
// resamples. Concurrent misses for the same sketch or size share one render.
type PosterCache struct {
	mu       sync.Mutex
	registry *sketch.Registry
	natives  map[string]sketch.Poster
	entries  map[posterKey][]byte
	order    []posterKey
	max      int
	renders  singleflight.Group
	encodes  singleflight.Group
}

// NewPosterCache creates a PosterCache holding at most max encoded posters.
func NewPosterCache(r *sketch.Registry, max int) *PosterCache {
	return &PosterCache{
		registry: r,
		natives:  make(map[string]sketch.Poster),
		entries:  make(map[posterKey][]byte),
		max:      max,
	}
}

// Get returns the encoded poster for item, bounded by maxW x maxH. format
// is "png" or "jpg".
func (p *PosterCache) Get(item gallery.Item, maxW, maxH int, format string) ([]byte, error) {
	key := posterKey{id: item.ID, w: maxW, h: maxH, format: format}

	p.mu.Lock()
	if b, ok := p.entries[key]; ok {
		p.mu.Unlock()
		return b, nil
	}
	p.mu.Unlock()

	v, err, _ := p.encodes.Do(key.String(), func() (any, error) {
		native, err := p.native(item)
		if err != nil {
			return nil, err
		}
		poster := native.Fit(maxW, maxH)
		if format == "jpg" {
			return poster.JPEG()
		}
		return poster.PNG()
	})
	if err != nil {
		return nil, err
	}
	b := v.([]byte)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[key]; !ok {
		if len(p.order) >= p.max {
			oldest := p.order[0]
			p.order = p.order[1:]
			delete(p.entries, oldest)
		}
		p.order = append(p.order, key)
		p.entries[key] = b
	}
	return b, nil
}

// native returns the full-size render of item, drawing it on first use.
// The catalogue is fixed, so natives are never evicted.
func (p *PosterCache) native(item gallery.Item) (sketch.Poster, error) {
	p.mu.Lock()
	if n, ok := p.natives[item.ID]; ok {
		p.mu.Unlock()
		return n, nil
	}
	p.mu.Unlock()

	v, err, _ := p.renders.Do(item.ID, func() (any, error) {
		fn, err := p.registry.Lookup(item.ID)
		if err != nil {
			return nil, err
		}
		n, err := sketch.RenderNative(item.ID, fn, item.Width, item.Height)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.natives[item.ID] = n
		p.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return sketch.Poster{}, err
	}
	return v.(sketch.Poster), nil
}

// Renders reports how many sketches have been drawn at native size.
func (p *PosterCache) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.natives)
}

// handleSketch serves /sketch/:id.png and /sketch/:id.jpg posters.
func (a *App) handleSketch(c echo.Context) error {
	file := c.Param("file")
	ext := path.Ext(file)
	format := strings.TrimPrefix(ext, ".")
	if format != "png" && format != "jpg" {
		return echo.ErrNotFound
	}
	item, ok := a.Store.Get(strings.TrimSuffix(file, ext))
	if !ok || item.IsEmpty || item.IsText {
		return echo.ErrNotFound
	}

	maxW := dimParam(c, "w")
	maxH := dimParam(c, "h")
	b, err := a.Posters.Get(item, maxW, maxH, format)
	switch {
	case errors.Is(err, sketch.ErrUnknownSketch):
		return echo.ErrNotFound
	case errors.Is(err, sketch.ErrInvalidSize):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	mime := "image/png"
	if format == "jpg" {
		mime = "image/jpeg"
	}
	return c.Blob(http.StatusOK, mime, b)
}

// dimParam reads a non-negative pixel bound; 0 means native size.
func dimParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 0 {
		return 0
	}
	return min(n, sketch.MaxSide)
}
