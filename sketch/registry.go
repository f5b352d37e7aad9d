package sketch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gogpu/gg"
)

// ErrUnknownSketch is returned by Lookup for unregistered ids.
var ErrUnknownSketch = errors.New("sketch: unknown sketch")

// Registry maps gallery item ids to drawing callbacks.
type Registry struct {
	mu    sync.RWMutex
	draws map[string]DrawFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{draws: make(map[string]DrawFunc)}
}

// Register binds fn to id, replacing any previous binding.
func (r *Registry) Register(id string, fn DrawFunc) {
	r.mu.Lock()
	r.draws[id] = fn
	r.mu.Unlock()
}

// Lookup returns the callback for id.
func (r *Registry) Lookup(id string) (DrawFunc, error) {
	r.mu.RLock()
	fn, ok := r.draws[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSketch, id)
	}
	return fn, nil
}

// IDs lists registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.draws))
	for id := range r.draws {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

const (
	paper = "#f5f1e8"
	ink   = "#1b1b1b"
)

// Default returns posters for the catalogue sketches.
func Default() *Registry {
	r := NewRegistry()
	r.Register("b", trail)
	r.Register("c", rings)
	r.Register("e", dots)
	r.Register("h", weave)
	r.Register("g", waves)
	r.Register("f", horizon)
	return r
}

func background(dc *gg.Context) {
	dc.ClearWithColor(gg.Hex(paper))
	dc.SetHexColor(ink)
}

func size(dc *gg.Context) (float64, float64) {
	return float64(dc.Width()), float64(dc.Height())
}

// trail is a mouse-drag trace: a spiral of shrinking circles.
func trail(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	dc.SetLineWidth(2)
	for i := 0; i < 48; i++ {
		t := float64(i) / 48
		x := w/2 + math.Cos(t*6*math.Pi)*w*0.35*t
		y := h/2 + math.Sin(t*6*math.Pi)*h*0.35*t
		dc.DrawCircle(x, y, 4+20*(1-t))
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func rings(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	dc.SetLineWidth(3)
	r := math.Min(w, h) / 2
	for k := 1; k <= 9; k++ {
		dc.DrawCircle(w/2, h/2, r*float64(k)/10)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// dots is the click sketch: a grid whose dot size follows a diagonal.
func dots(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	const cols, rows = 24, 10
	cw, ch := w/cols, h/rows
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			t := float64(i+j) / float64(cols+rows)
			dc.DrawCircle(cw*(float64(i)+0.5), ch*(float64(j)+0.5), math.Min(cw, ch)*0.45*t)
		}
	}
	return dc.Fill()
}

func weave(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	dc.SetLineWidth(2)
	for i := 0; i <= 30; i++ {
		x := w * float64(i) / 30
		dc.DrawLine(x, 0, w-x, h)
	}
	return dc.Stroke()
}

// waves is the slider sketch at its midpoint setting.
func waves(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	dc.SetLineWidth(2)
	for k := 0; k < 12; k++ {
		base := h * (float64(k) + 1) / 13
		dc.MoveTo(0, base)
		for x := 0.0; x <= w; x += 8 {
			dc.LineTo(x, base+math.Sin(x/w*4*math.Pi+float64(k)*0.4)*h/30)
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func horizon(dc *gg.Context) error {
	background(dc)
	w, h := size(dc)
	dc.DrawCircle(w*0.7, h*0.45, h*0.2)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetLineWidth(4)
	dc.DrawLine(0, h*0.65, w, h*0.65)
	return dc.Stroke()
}
