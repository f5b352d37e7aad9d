// Package overlay computes the decorative path that threads through key
// gallery items. Geometry comes from a Measurer so the arithmetic works the
// same against a browser report or the server-side grid simulation.
package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/layout"
)

// Margin is added below every anchor so the line clears the item edge.
const Margin = 20

// RightEdge addresses the right edge of the grid in Anchor columns.
const RightEdge = layout.Columns + 1

// Rect is a rendered box in container pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer reports rendered item boxes.
type Measurer interface {
	// BoxFor returns the box bound to an item id, if it has been rendered.
	BoxFor(id string) (Rect, bool)
	// ContainerTop is the top of the element the boxes are positioned in.
	ContainerTop() float64
}

// Align picks the vertical point on an anchor's box.
type Align int

const (
	Center Align = iota
	Bottom
)

// Anchor names one point of the path.
type Anchor struct {
	ID        string
	Col       int // 1..4, or RightEdge
	MobileCol int
	Align     Align
}

// Anchors is the authored path. Item e appears twice so the line bends
// around it.
var Anchors = []Anchor{
	{ID: "a", Col: 1, MobileCol: 1, Align: Center},
	{ID: "b", Col: 4, MobileCol: 3, Align: Center},
	{ID: "e", Col: 2, MobileCol: 2, Align: Center},
	{ID: "e", Col: RightEdge, MobileCol: RightEdge, Align: Bottom},
	{ID: "g", Col: 1, MobileCol: 1, Align: Center},
	{ID: "f", Col: 3, MobileCol: 3, Align: Center},
}

// Point is one vertex: X in percent of the available width, Y in px.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return formatNum(p.X) + "," + formatNum(p.Y)
}

// Points resolves anchors against m. Anchors whose item is not rendered
// yield the origin instead of failing the whole path.
func Points(m Measurer, viewportWidth float64, anchors []Anchor) []Point {
	metrics := layout.MetricsFor(viewportWidth)
	out := make([]Point, 0, len(anchors))
	for _, a := range anchors {
		box, ok := m.BoxFor(a.ID)
		if !ok {
			out = append(out, Point{})
			continue
		}
		col := a.Col
		if metrics.Mobile {
			col = a.MobileCol
		}
		dy := box.Height / 2
		if a.Align == Bottom {
			dy = box.Height
		}
		out = append(out, Point{
			X: metrics.ColumnLeft(col),
			Y: box.Top - m.ContainerTop() + dy + Margin,
		})
	}
	return out
}

// Compute returns the overlay as space-separated "x,y" tokens, or "" while a
// ratio filter is active.
func Compute(m Measurer, viewportWidth float64, filter gallery.Filter) string {
	if filter.Filtering() {
		return ""
	}
	return Join(Points(m, viewportWidth, Anchors))
}

// Join formats points as a polyline points attribute.
func Join(points []Point) string {
	tokens := make([]string, len(points))
	for i, p := range points {
		tokens[i] = p.String()
	}
	return strings.Join(tokens, " ")
}

// ErrBadPoint is returned by ParsePoints for malformed tokens.
var ErrBadPoint = errors.New("overlay: malformed point")

// ParsePoints reads the output of Compute back into points.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	out := make([]Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadPoint, f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPoint, f)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPoint, f)
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}

// SmoothPath renders points as an SVG path of vertical S-curves, one cubic
// segment per pair of consecutive points.
func SmoothPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M" + formatNum(points[0].X) + " " + formatNum(points[0].Y))
	for i := 1; i < len(points); i++ {
		p, q := points[i-1], points[i]
		mid := formatNum((p.Y + q.Y) / 2)
		fmt.Fprintf(&b, " C%s %s %s %s %s %s",
			formatNum(p.X), mid, formatNum(q.X), mid, formatNum(q.X), formatNum(q.Y))
	}
	return b.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
