package sketch

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

const jpegQuality = 80

// Poster is a rendered still of a sketch at its display size.
type Poster struct {
	ID     string
	Width  int
	Height int
	Scale  float64
	Image  image.Image
}

// RenderPoster draws the sketch at its native size and downsamples it to fit
// within maxW x maxH. Posters are never scaled up; a zero bound means no
// limit on that side.
func RenderPoster(id string, fn DrawFunc, nativeW, nativeH, maxW, maxH int) (Poster, error) {
	p, err := RenderNative(id, fn, nativeW, nativeH)
	if err != nil {
		return Poster{}, err
	}
	return p.Fit(maxW, maxH), nil
}

// RenderNative draws the sketch once at nativeW x nativeH.
func RenderNative(id string, fn DrawFunc, nativeW, nativeH int) (Poster, error) {
	h, err := NewHost(fn, nativeW, nativeH)
	if err != nil {
		return Poster{}, err
	}
	defer h.Close()

	if err := h.Mount(); err != nil {
		return Poster{}, err
	}
	img, err := h.Image()
	if err != nil {
		return Poster{}, err
	}
	return Poster{ID: id, Width: nativeW, Height: nativeH, Scale: 1, Image: img}, nil
}

// Fit returns p resampled to fit within maxW x maxH. p is returned as is
// when it already fits.
func (p Poster) Fit(maxW, maxH int) Poster {
	scale := fitScale(p.Width, p.Height, maxW, maxH)
	if scale >= 1 {
		return p
	}
	w := max(1, int(math.Round(float64(p.Width)*scale)))
	hgt := max(1, int(math.Round(float64(p.Height)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, hgt))
	draw.CatmullRom.Scale(dst, dst.Bounds(), p.Image, p.Image.Bounds(), draw.Over, nil)
	return Poster{ID: p.ID, Width: w, Height: hgt, Scale: p.Scale * scale, Image: dst}
}

func fitScale(w, h, maxW, maxH int) float64 {
	scale := 1.0
	if maxW > 0 && maxW < w {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && maxH < h {
		scale = min(scale, float64(maxH)/float64(h))
	}
	return scale
}

// PNG encodes the poster losslessly.
func (p Poster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Image); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// JPEG encodes the poster for bandwidth-sensitive clients.
func (p Poster) JPEG() ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, p.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
