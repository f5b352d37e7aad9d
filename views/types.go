package views

import (
	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/layout"
)

// SiteConfig holds site-wide settings. Every handler passes this to
// templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Portfolio")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website"
}

// GalleryView is everything the gallery section needs for one viewport
// width and filter.
type GalleryView struct {
	Filter  gallery.Filter       `json:"filter"`
	Width   float64              `json:"width"`
	Metrics layout.Metrics       `json:"metrics"`
	Items   []layout.VisibleItem `json:"items"`
	Path    string               `json:"path"`
	Height  float64              `json:"height"`
}

// Page is a full document render.
type Page struct {
	Site    SiteConfig
	Meta    PageMeta
	Gallery GalleryView
	Live    bool   // include the live re-layout script
	JsonLD  string // extra structured data, emitted after the WebSite block
}
