// Package layout turns visible catalogue items into pixel sizes for a given
// viewport width.
package layout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/sketchfolio/gallery"
)

// Grid constants.
const (
	Columns        = 4
	MobileMaxWidth = 768

	mobileGap      = 16
	desktopGap     = 32
	mobilePadding  = 32
	desktopPadding = 96

	defaultSpanClass = "col-span-4"
)

var (
	reSpan     = regexp.MustCompile(`col-span-(\d+)`)
	reColStart = regexp.MustCompile(`col-start-(\d+)`)
)

// Metrics are the grid dimensions derived from the viewport width.
type Metrics struct {
	Viewport  float64 `json:"viewport"`
	Mobile    bool    `json:"mobile"`
	Gap       float64 `json:"gap"`
	Padding   float64 `json:"padding"`
	Available float64 `json:"available"`
	Unit      float64 `json:"unit"`
}

// MetricsFor computes grid metrics for a viewport width in px.
func MetricsFor(viewportWidth float64) Metrics {
	m := Metrics{Viewport: viewportWidth, Mobile: viewportWidth <= MobileMaxWidth}
	if m.Mobile {
		m.Gap, m.Padding = mobileGap, mobilePadding
	} else {
		m.Gap, m.Padding = desktopGap, desktopPadding
	}
	m.Available = max(0, viewportWidth-m.Padding)
	m.Unit = (m.Available - m.Gap*(Columns-1)) / Columns
	return m
}

// SpanWidth is the pixel width of span grid tracks including inner gaps.
func (m Metrics) SpanWidth(span int) float64 {
	return m.Unit*float64(span) + m.Gap*float64(span-1)
}

// ColumnLeft is the left edge of column col (1-based) as a percentage of
// the available width. Column Columns+1 is the right edge, 100.
func (m Metrics) ColumnLeft(col int) float64 {
	if col > Columns {
		return 100
	}
	if col <= 1 || m.Available == 0 {
		return 0
	}
	return (m.Unit + m.Gap) * float64(col-1) / m.Available * 100
}

// SpanClass picks the responsive column class for an item.
func (m Metrics) SpanClass(it gallery.Item) string {
	if m.Mobile {
		if it.MobileGridClass != "" {
			return it.MobileGridClass
		}
		return defaultSpanClass
	}
	if it.GridClass != "" {
		return it.GridClass
	}
	return defaultSpanClass
}

// ParseSpan extracts N from "col-span-N", defaulting to 1.
func ParseSpan(class string) int {
	match := reSpan.FindStringSubmatch(class)
	if match == nil {
		return 1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseColStart extracts N from "col-start-N", or 0 for auto placement.
func ParseColStart(class string) int {
	match := reColStart.FindStringSubmatch(class)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Sanitizer makes an authored URL safe to place in an iframe src.
type Sanitizer func(string) templ.SafeURL

// Sanitize is the default Sanitizer. Unsafe schemes are replaced with an
// inert placeholder by templ.
func Sanitize(u string) templ.SafeURL { return templ.URL(u) }

// PresentURL rewrites a p5 editor URL to its chrome-less presentation form.
func PresentURL(u string) string {
	return strings.Replace(u, "/full/", "/present/", 1)
}

// VisibleItem is an item with its computed render properties.
type VisibleItem struct {
	gallery.Item
	Span          int           `json:"span"`
	ColStart      int           `json:"colStart"`
	Scale         float64       `json:"scale"`
	DisplayWidth  float64       `json:"displayWidth"`
	DisplayHeight float64       `json:"displayHeight"`
	DisplayOffset float64       `json:"displayOffset"`
	NativeWidth   int           `json:"nativeWidth"`
	NativeHeight  int           `json:"nativeHeight"`
	SafeURL       templ.SafeURL `json:"src"`
}

// Compute lays out items for viewportWidth. It is a pure function of its
// arguments; a nil sanitize uses Sanitize.
func Compute(items []gallery.Item, viewportWidth float64, filter gallery.Filter, sanitize Sanitizer) []VisibleItem {
	if sanitize == nil {
		sanitize = Sanitize
	}
	m := MetricsFor(viewportWidth)
	filtering := filter.Filtering()
	out := make([]VisibleItem, 0, len(items))
	for _, it := range items {
		out = append(out, place(m, it, filtering, sanitize))
	}
	return out
}

func place(m Metrics, it gallery.Item, filtering bool, sanitize Sanitizer) VisibleItem {
	class := m.SpanClass(it)
	v := VisibleItem{
		Item:     it,
		Span:     ParseSpan(class),
		ColStart: ParseColStart(class),
		Scale:    1,
	}
	if it.IsEmpty {
		return v
	}

	target := m.SpanWidth(v.Span)
	if target < float64(it.Width) {
		v.Scale = target / float64(it.Width)
	}
	v.DisplayWidth = target
	v.DisplayHeight = float64(it.Height) * v.Scale
	if m.Mobile && it.MobileAspect > 0 {
		v.DisplayHeight = target / it.MobileAspect
	}
	v.NativeWidth, v.NativeHeight = it.Width, it.Height

	switch {
	case filtering:
	case m.Mobile:
		if it.MobileOffset != nil {
			v.DisplayOffset = float64(*it.MobileOffset)
		}
	default:
		v.DisplayOffset = float64(it.Offset)
	}

	if it.URL != "" {
		v.SafeURL = sanitize(PresentURL(it.URL))
	}
	return v
}
