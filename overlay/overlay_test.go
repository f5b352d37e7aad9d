package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/layout"
)

type fakeMeasurer struct {
	top   float64
	boxes map[string]Rect
}

func (f fakeMeasurer) BoxFor(id string) (Rect, bool) {
	r, ok := f.boxes[id]
	return r, ok
}

func (f fakeMeasurer) ContainerTop() float64 { return f.top }

func TestComputeEmptyWhileFiltering(t *testing.T) {
	m := fakeMeasurer{boxes: map[string]Rect{"a": {Top: 10, Height: 100}}}
	assert.Equal(t, "", Compute(m, 1200, gallery.Square))
	assert.Equal(t, "", Compute(m, 1200, gallery.Landscape))
	assert.NotEqual(t, "", Compute(m, 1200, gallery.All))
}

func TestComputeMissingElementsDegradeToOrigin(t *testing.T) {
	got := Compute(fakeMeasurer{}, 1200, gallery.All)
	assert.Equal(t, "0,0 0,0 0,0 0,0 0,0 0,0", got)
}

func TestPointsUseAlignmentAndMargin(t *testing.T) {
	m := fakeMeasurer{
		top: 100,
		boxes: map[string]Rect{
			"a": {Top: 100, Height: 200},
			"e": {Top: 500, Height: 300},
		},
	}
	pts := Points(m, 1200, Anchors)
	require.Len(t, pts, 6)

	assert.Equal(t, Point{X: 0, Y: 120}, pts[0])
	assert.Equal(t, Point{}, pts[1], "b is not rendered")
	assert.Equal(t, 570.0, pts[2].Y, "center of e")
	assert.Equal(t, 720.0, pts[3].Y, "bottom of e")
	assert.Equal(t, 100.0, pts[3].X)
	assert.InDelta(t, 284.0/1104*100, pts[2].X, 1e-9)
}

func TestMobileSubstitutesColumns(t *testing.T) {
	m := fakeMeasurer{boxes: map[string]Rect{"b": {Height: 10}}}
	desktop := Points(m, 1200, Anchors)[1]
	mobile := Points(m, 600, Anchors)[1]
	assert.InDelta(t, 852.0/1104*100, desktop.X, 1e-9)
	assert.InDelta(t, 292.0/568*100, mobile.X, 1e-9)
}

func TestParsePointsRoundTrip(t *testing.T) {
	pts := []Point{{0, 160}, {77.5, 372.25}, {100, 900}}
	got, err := ParsePoints(Join(pts))
	require.NoError(t, err)
	assert.Equal(t, pts, got)

	_, err = ParsePoints("1,2 oops")
	assert.ErrorIs(t, err, ErrBadPoint)
}

func TestSmoothPath(t *testing.T) {
	assert.Equal(t, "", SmoothPath(nil))
	got := SmoothPath([]Point{{0, 0}, {50, 100}})
	assert.Equal(t, "M0 0 C0 50 50 50 50 100", got)
}

func TestGridMeasurerDesktop(t *testing.T) {
	items := layout.Compute(gallery.Catalogue(), 1200, gallery.All, nil)
	g := NewGridMeasurer(items, 1200)

	a, ok := g.BoxFor("a")
	require.True(t, ok)
	assert.Equal(t, 0.0, a.Top)
	assert.Equal(t, 252.0+CaptionHeight, a.Height)

	b, ok := g.BoxFor("b")
	require.True(t, ok)
	assert.Equal(t, 0.0, b.Left, "b wraps to the second row")
	assert.Equal(t, 280.0+32+40, b.Top)

	c, ok := g.BoxFor("c")
	require.True(t, ok)
	assert.Equal(t, 3*284.0, c.Left)

	_, ok = g.BoxFor("missing")
	assert.False(t, ok)
	assert.Greater(t, g.Height(), b.Top)
}

func TestGridMeasurerHonoursColStart(t *testing.T) {
	items := layout.Compute(gallery.Catalogue(), 600, gallery.All, nil)
	g := NewGridMeasurer(items, 600)
	b, ok := g.BoxFor("b")
	require.True(t, ok)
	assert.Equal(t, 2*(130.0+16), b.Left)
}

func TestGridPathStartsAtHeroCenter(t *testing.T) {
	items := layout.Compute(gallery.Catalogue(), 1200, gallery.All, nil)
	pts, err := ParsePoints(Compute(NewGridMeasurer(items, 1200), 1200, gallery.All))
	require.NoError(t, err)
	require.Len(t, pts, 6)
	assert.Equal(t, Point{X: 0, Y: 140 + 20}, pts[0])
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].Y, 0.0, "anchor %d resolved", i)
	}
}
