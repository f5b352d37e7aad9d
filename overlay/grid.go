package overlay

import "github.com/eringen/sketchfolio/layout"

// CaptionHeight is the space a visible title line takes under an item.
const CaptionHeight = 28

// GridMeasurer places laid-out items on the 4-column grid the way the
// browser's auto-placement does for single-row items, so the overlay can be
// drawn without a client round trip.
type GridMeasurer struct {
	boxes  map[string]Rect
	height float64
}

// NewGridMeasurer flows items row by row. Items with an explicit start
// column go to the next row when the cursor has already passed it; auto
// items wrap when their span does not fit.
func NewGridMeasurer(items []layout.VisibleItem, viewportWidth float64) *GridMeasurer {
	m := layout.MetricsFor(viewportWidth)
	g := &GridMeasurer{boxes: make(map[string]Rect, len(items))}

	type placed struct {
		item layout.VisibleItem
		col  int
	}
	var row []placed
	rowTop := 0.0
	cursor := 1

	flush := func() {
		if len(row) == 0 {
			return
		}
		rowHeight := 0.0
		for _, p := range row {
			rowHeight = max(rowHeight, itemHeight(p.item)+max(0, p.item.DisplayOffset))
		}
		for _, p := range row {
			width := p.item.DisplayWidth
			if p.item.IsEmpty {
				width = m.SpanWidth(p.item.Span)
			}
			g.boxes[p.item.ID] = Rect{
				Top:    rowTop + p.item.DisplayOffset,
				Left:   float64(p.col-1) * (m.Unit + m.Gap),
				Width:  width,
				Height: itemHeight(p.item),
			}
		}
		g.height = rowTop + rowHeight
		rowTop += rowHeight + m.Gap
		row = row[:0]
		cursor = 1
	}

	for _, it := range items {
		span := min(max(it.Span, 1), layout.Columns)
		start := it.ColStart
		if start > 0 {
			start = min(start, layout.Columns-span+1)
			if start < cursor {
				flush()
			}
		} else {
			if cursor+span-1 > layout.Columns {
				flush()
			}
			start = cursor
		}
		row = append(row, placed{item: it, col: start})
		cursor = start + span
		if cursor > layout.Columns {
			flush()
		}
	}
	flush()
	return g
}

func itemHeight(it layout.VisibleItem) float64 {
	h := it.DisplayHeight
	if it.ShowTitle() {
		h += CaptionHeight
	}
	return h
}

// BoxFor implements Measurer.
func (g *GridMeasurer) BoxFor(id string) (Rect, bool) {
	r, ok := g.boxes[id]
	return r, ok
}

// ContainerTop implements Measurer. Boxes are already container-relative.
func (g *GridMeasurer) ContainerTop() float64 { return 0 }

// Height is the total content height of the simulated grid.
func (g *GridMeasurer) Height() float64 { return g.height }

// Boxes is a Measurer backed by a fixed map, as reported by a client.
type Boxes struct {
	Top   float64         `json:"containerTop"`
	Rects map[string]Rect `json:"boxes"`
}

// BoxFor implements Measurer.
func (b Boxes) BoxFor(id string) (Rect, bool) {
	r, ok := b.Rects[id]
	return r, ok
}

// ContainerTop implements Measurer.
func (b Boxes) ContainerTop() float64 { return b.Top }
