// Package sketch hosts drawing callbacks on a fixed-size canvas. The gallery
// embeds the hosted p5 sketches directly; this package renders the Go-side
// posters shown while an embed loads or when a client cannot run it.
package sketch

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// MaxSide bounds either canvas dimension.
const MaxSide = 8192

var (
	// ErrInvalidSize is returned when a canvas dimension is out of range.
	ErrInvalidSize = errors.New("sketch: invalid canvas size")
	// ErrNotMounted is returned when reading a host that was never mounted or
	// has been closed.
	ErrNotMounted = errors.New("sketch: host not mounted")
)

// DrawFunc paints one frame onto dc. The canvas is exactly the host size.
type DrawFunc func(dc *gg.Context) error

// Host wraps a drawing callback and the canvas it draws on.
type Host struct {
	Draw   DrawFunc
	Width  int
	Height int

	canvas *gg.Context
}

// NewHost validates the size and returns an unmounted host.
func NewHost(draw DrawFunc, width, height int) (*Host, error) {
	if width <= 0 || height <= 0 || width > MaxSide || height > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Host{Draw: draw, Width: width, Height: height}, nil
}

// Mount creates the canvas and runs the callback once. Mounting twice
// redraws on the existing canvas.
func (h *Host) Mount() error {
	if h.canvas == nil {
		h.canvas = gg.NewContext(h.Width, h.Height)
	}
	if h.Draw == nil {
		return nil
	}
	if err := h.Draw(h.canvas); err != nil {
		return fmt.Errorf("sketch: draw: %w", err)
	}
	return nil
}

// Mounted reports whether the host currently owns a canvas.
func (h *Host) Mounted() bool { return h.canvas != nil }

// Image returns the rendered frame.
func (h *Host) Image() (image.Image, error) {
	if h.canvas == nil {
		return nil, ErrNotMounted
	}
	return h.canvas.Image(), nil
}

// EncodePNG writes the rendered frame as PNG.
func (h *Host) EncodePNG(w io.Writer) error {
	if h.canvas == nil {
		return ErrNotMounted
	}
	return h.canvas.EncodePNG(w)
}

// Close releases the canvas. It is safe to call more than once.
func (h *Host) Close() error {
	if h.canvas == nil {
		return nil
	}
	err := h.canvas.Close()
	h.canvas = nil
	return err
}
