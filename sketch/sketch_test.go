package sketch

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
)

func TestNewHostRejectsBadSizes(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {MaxSide + 1, 10}} {
		if _, err := NewHost(nil, sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewHost(%v) error = %v, want ErrInvalidSize", sz, err)
		}
	}
}

func TestHostCanvasMatchesSize(t *testing.T) {
	h, err := NewHost(rings, 120, 80)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	img, err := h.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("canvas = %dx%d, want 120x80", b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	if err := h.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestHostCloseReleasesCanvas(t *testing.T) {
	h, _ := NewHost(nil, 10, 10)
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if h.Mounted() {
		t.Error("host still mounted after Close")
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := h.Image(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Image after Close = %v, want ErrNotMounted", err)
	}
}

func TestHostPropagatesDrawErrors(t *testing.T) {
	boom := errors.New("boom")
	h, _ := NewHost(func(*gg.Context) error { return boom }, 4, 4)
	defer h.Close()
	if err := h.Mount(); !errors.Is(err, boom) {
		t.Errorf("Mount error = %v, want boom", err)
	}
}

func TestRenderPosterDownsamples(t *testing.T) {
	p, err := RenderPoster("f", horizon, 250, 120, 100, 0)
	if err != nil {
		t.Fatalf("RenderPoster: %v", err)
	}
	if p.Width != 100 || p.Height != 48 {
		t.Errorf("poster = %dx%d, want 100x48", p.Width, p.Height)
	}
	if b := p.Image.Bounds(); b.Dx() != p.Width || b.Dy() != p.Height {
		t.Errorf("image bounds %v disagree with %dx%d", b, p.Width, p.Height)
	}
}

func TestRenderPosterNeverUpscales(t *testing.T) {
	p, err := RenderPoster("c", rings, 80, 80, 400, 400)
	if err != nil {
		t.Fatalf("RenderPoster: %v", err)
	}
	if p.Scale != 1 || p.Width != 80 || p.Height != 80 {
		t.Errorf("poster = %dx%d scale %v, want native", p.Width, p.Height, p.Scale)
	}
	if _, err := p.JPEG(); err != nil {
		t.Errorf("JPEG: %v", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	want := []string{"b", "c", "e", "f", "g", "h"}
	got := r.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownSketch) {
		t.Errorf("Lookup(nope) = %v, want ErrUnknownSketch", err)
	}
	for _, id := range want {
		fn, _ := r.Lookup(id)
		if _, err := RenderPoster(id, fn, 64, 48, 0, 0); err != nil {
			t.Errorf("render %s: %v", id, err)
		}
	}
}

func TestFitResamplesNativeRender(t *testing.T) {
	native, err := RenderNative("f", horizon, 250, 120)
	if err != nil {
		t.Fatalf("RenderNative: %v", err)
	}
	small := native.Fit(0, 60)
	if small.Width != 125 || small.Height != 60 || small.Scale != 0.5 {
		t.Errorf("fit = %dx%d scale %v, want 125x60 scale 0.5", small.Width, small.Height, small.Scale)
	}
	if same := native.Fit(300, 300); same.Width != 250 || same.Height != 120 || same.Scale != 1 {
		t.Errorf("fit = %dx%d scale %v, want native", same.Width, same.Height, same.Scale)
	}
}
