package views

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/layout"
	"github.com/eringen/sketchfolio/markdown"
	"github.com/eringen/sketchfolio/overlay"
)

// NavbarOffset shifts the overlay below the fixed navigation bar.
const NavbarOffset = 42

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Home renders the full portfolio page.
func Home(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n")
		h.raw(`<html lang="en"><head>`)
		h.component(ctx, head(p.Site, p.Meta, p.JsonLD))
		h.raw(`</head><body class="bg-paper text-ink">`)
		h.component(ctx, navbar(p.Site, p.Gallery))
		h.component(ctx, GallerySection(p.Gallery))
		if p.Live {
			h.raw(`<script src="/public/gallery.js" defer></script>`)
		}
		h.raw("</body></html>")
		return h.err
	})
}

func head(site SiteConfig, meta PageMeta, jsonLD string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		title := meta.Title
		if title == "" {
			title = site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		if desc != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", desc)
			h.raw(">")
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", meta.URL)
			h.raw(`><meta property="og:url"`)
			h.attr("content", meta.URL)
			h.raw(">")
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", title)
		h.raw(`><meta property="og:type"`)
		h.attr("content", meta.OGType)
		h.raw(`><link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		h.attr("title", site.Name)
		h.raw(">")
		h.raw(`<link rel="stylesheet" href="/public/gallery.css">`)
		h.raw(`<script type="application/ld+json">`, WebsiteJsonLD(site), `</script>`)
		if jsonLD != "" {
			h.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		}
		return h.err
	})
}

func navbar(site SiteConfig, v GalleryView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav class="navbar"><a class="brand" href="/go/gallery">`)
		h.text(site.Name)
		h.raw("</a>")
		h.component(ctx, FilterBar(v.Filter, v.Width))
		h.raw("</nav>")
		return h.err
	})
}

// FilterBar renders the ratio filter pills.
func FilterBar(active gallery.Filter, width float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="filters" role="group" aria-label="Filter by ratio">`)
		for _, f := range gallery.Filters {
			h.raw("<a")
			h.attr("class", FilterClass(f == active))
			h.attr("href", FilterHref(f, width))
			h.attr("data-filter", f.String())
			if f == active {
				h.raw(` aria-current="true"`)
			}
			h.raw(">")
			h.text(f.String())
			h.raw("</a>")
		}
		h.raw("</div>")
		return h.err
	})
}

// GallerySection renders the grid and the overlay path. It is also the
// HTMX partial swapped in on filter changes.
func GallerySection(v GalleryView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		m := v.Metrics
		h.raw(`<main id="gallery" class="gallery"`)
		h.attr("data-filter", v.Filter.String())
		h.attr("data-width", px(v.Width))
		h.attr("style", fmt.Sprintf("--pad: %spx", px(m.Padding/2)))
		h.raw(">")
		h.raw(`<div id="grid" class="grid"`)
		h.attr("style", fmt.Sprintf("gap: %spx", px(m.Gap)))
		h.raw(">")
		for _, it := range v.Items {
			h.component(ctx, Card(it))
		}
		h.raw("</div>")
		h.component(ctx, Overlay(v.Path, v.Height))
		h.raw("</main>")
		return h.err
	})
}

// NodeID is the DOM id of an item's card, measured by the overlay.
func NodeID(id string) string { return "node-" + id }

func gridColumn(it layout.VisibleItem) string {
	if it.ColStart > 0 {
		return fmt.Sprintf("grid-column: %d / span %d", it.ColStart, it.Span)
	}
	return fmt.Sprintf("grid-column: span %d / span %d", it.Span, it.Span)
}

func cardStyle(it layout.VisibleItem) string {
	s := gridColumn(it)
	if it.DisplayOffset != 0 {
		s += fmt.Sprintf("; transform: translateY(%spx)", px(it.DisplayOffset))
	}
	return s
}

func frameStyle(it layout.VisibleItem) string {
	return fmt.Sprintf("width: %spx; height: %spx", px(it.DisplayWidth), px(it.DisplayHeight))
}

// Card renders one grid cell: a spacer, the text block, or a scaled embed.
func Card(it layout.VisibleItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		switch {
		case it.IsEmpty:
			h.raw(`<div class="cell spacer" aria-hidden="true"`)
			h.attr("id", NodeID(it.ID))
			h.attr("style", gridColumn(it))
			h.raw("></div>")
		case it.IsText:
			h.raw(`<section class="cell text-cell"`)
			h.attr("id", NodeID(it.ID))
			h.attr("style", cardStyle(it))
			h.raw(`><div class="frame text-frame"`)
			h.attr("style", frameStyle(it))
			h.raw("><h1>")
			h.text(it.Title)
			h.raw("</h1>")
			if it.Caption != "" {
				h.raw(`<p class="caption">`)
				h.component(ctx, markdown.Inline(it.Caption))
				h.raw("</p>")
			}
			h.raw("</div></section>")
		default:
			h.raw(`<figure class="cell sketch"`)
			h.attr("id", NodeID(it.ID))
			h.attr("style", cardStyle(it))
			h.raw(`><div class="frame"`)
			h.attr("style", frameStyle(it))
			h.raw(`><img class="poster" alt="" loading="lazy"`)
			h.attr("src", fmt.Sprintf("/sketch/%s.png?w=%d&h=%d", it.ID, int(it.DisplayWidth), int(it.DisplayHeight)))
			h.raw(`><iframe loading="lazy" allow="fullscreen"`)
			h.attr("src", string(it.SafeURL))
			h.attr("title", iframeTitle(it))
			h.attr("width", strconv.Itoa(it.NativeWidth))
			h.attr("height", strconv.Itoa(it.NativeHeight))
			h.attr("style", fmt.Sprintf("transform: scale(%s); transform-origin: 0 0", px(it.Scale)))
			h.raw("></iframe></div>")
			if it.ShowTitle() {
				h.raw("<figcaption>")
				h.text(it.Title)
				h.raw("</figcaption>")
			}
			h.raw("</figure>")
		}
		return h.err
	})
}

func iframeTitle(it layout.VisibleItem) string {
	if it.Title != "" {
		return it.Title
	}
	return "Sketch " + it.ID
}

// Overlay renders the decorative path. The viewBox maps x to percent of
// the grid width and y to pixels, so points need no rescaling.
func Overlay(points string, height float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if points == "" || height <= 0 {
			return nil
		}
		pts, err := overlay.ParsePoints(points)
		if err != nil {
			return err
		}
		h := &htmlWriter{w: w}
		h.raw(`<svg id="overlay" class="overlay" aria-hidden="true" preserveAspectRatio="none"`)
		h.attr("viewBox", "0 0 100 "+px(height))
		h.attr("style", fmt.Sprintf("top: %dpx; height: %spx", NavbarOffset, px(height)))
		h.attr("data-points", points)
		h.raw(`><path fill="none" stroke="currentColor" stroke-width="1.5" vector-effect="non-scaling-stroke"`)
		h.attr("d", overlay.SmoothPath(pts))
		h.raw("></path></svg>")
		return h.err
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return message("Not found", "There is nothing here.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return message("Something went wrong", "Please try again in a moment.")
}

func message(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/public/gallery.css"></head><body class="message"><h1>`)
		h.text(title)
		h.raw("</h1><p>")
		h.text(body)
		h.raw(`</p><p><a href="/">Back to the gallery</a></p></body></html>`)
		return h.err
	})
}
