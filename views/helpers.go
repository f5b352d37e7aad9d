package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/eringen/sketchfolio/gallery"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterClass returns CSS classes for a filter pill, with active variant.
func FilterClass(active bool) string {
	base := "filter-pill inline-flex items-center rounded border border-ink px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] transition"
	if active {
		base += " bg-ink text-white"
	}
	return base
}

// FilterHref is the link a filter pill points at when scripts are off.
func FilterHref(f gallery.Filter, width float64) string {
	q := url.Values{}
	if f != gallery.All {
		q.Set("filter", f.String())
	}
	if width > 0 {
		q.Set("w", px(width))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// px formats a pixel value without trailing zeros.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
