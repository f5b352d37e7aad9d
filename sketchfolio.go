// Package sketchfolio serves a personal art portfolio: a responsive grid of
// embedded interactive sketches, ratio filters and a decorative overlay path,
// built with Go, Echo, and templ.
//
// Layout is computed on the server for the viewport width the client reports,
// and kept current over a websocket while the page is open.
package sketchfolio

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sketchfolio/gallery"
	applog "github.com/eringen/sketchfolio/internal/log"
	"github.com/eringen/sketchfolio/layout"
	"github.com/eringen/sketchfolio/overlay"
	"github.com/eringen/sketchfolio/sketch"
	"github.com/eringen/sketchfolio/views"
)

// ViewFuncs holds the templ component constructors the app renders with.
// Sites can swap any of them; DefaultViews fills the rest.
type ViewFuncs struct {
	Home           func(p views.Page) templ.Component
	GallerySection func(v views.GalleryView) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the built-in components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		GallerySection: views.GallerySection,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

func (v *ViewFuncs) fill() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.GallerySection == nil {
		v.GallerySection = d.GallerySection
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central application. It wires together the catalogue, layout
// cache, poster registry, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *gallery.Store
	Cache    *LayoutCache
	Sketches *sketch.Registry
	Posters  *PosterCache
	Views    ViewFuncs
	Log      *slog.Logger

	items        []gallery.Item
	sanitize     layout.Sanitizer
	liveLimiter  *ConnLimiter
	upgrader     websocket.Upgrader
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		items:     gallery.Catalogue(),
		sanitize:  layout.Sanitize,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	a.Views.fill()
	return a
}

// Setup builds the store, caches, middleware and routes. Start calls it;
// tests and the render command call it directly.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Log == nil {
		a.Log = applog.With("http")
	}

	store, err := gallery.NewStore(a.items)
	if err != nil {
		return fmt.Errorf("sketchfolio: init catalogue: %w", err)
	}
	a.Store = store

	if a.Sketches == nil {
		a.Sketches = sketch.Default()
	}
	a.Cache = NewLayoutCache(a.buildView, a.Config.LayoutCacheTTL)
	a.Posters = NewPosterCache(a.Sketches, maxCachedPosters)
	a.liveLimiter = NewConnLimiter(a.Config.LivePerMinute, time.Minute)
	a.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     a.checkOrigin,
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until the listener fails.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info("listening", "addr", a.Config.Addr, "items", len(a.items), "live", a.Config.LiveEnabled)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets (gallery.js, gallery.css) are embedded; everything
	// else under /public comes from the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/gallery.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/gallery.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/api/layout", a.handleLayout)
	e.GET("/sketch/:file", a.handleSketch)
	e.GET("/go/:section", a.handleSection)
	if a.Config.LiveEnabled {
		e.GET("/live", a.handleLive)
	}
}

// View returns the gallery for a viewport width and filter, from cache.
func (a *App) View(width float64, f gallery.Filter) views.GalleryView {
	if a.Cache == nil {
		return a.buildView(boundWidth(width, a.Config.MaxWidth), f)
	}
	return a.Cache.Get(boundWidth(width, a.Config.MaxWidth), f)
}

// Page returns the full-page view model, as the home handler renders it.
func (a *App) Page(width float64, f gallery.Filter) views.Page {
	return a.page(a.View(width, f))
}

// buildView runs the whole derivation: select, lay out, simulate the grid
// flow for box positions, then place the overlay path.
func (a *App) buildView(width float64, f gallery.Filter) views.GalleryView {
	items := layout.Compute(gallery.SelectVisible(a.Store.Items(), f), width, f, a.sanitize)
	gm := overlay.NewGridMeasurer(items, width)
	return views.GalleryView{
		Filter:  f,
		Width:   width,
		Metrics: layout.MetricsFor(width),
		Items:   items,
		Path:    overlay.Compute(gm, width, f),
		Height:  gm.Height(),
	}
}

// checkOrigin accepts same-host upgrades and the configured site URL.
func (a *App) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}
	site, err := url.Parse(a.Config.URL)
	return err == nil && site.Host == u.Host
}

// Close stops background work and releases the log file. Call this when
// the app is shutting down.
func (a *App) Close() error {
	if a.liveLimiter != nil {
		a.liveLimiter.Stop()
	}
	return applog.Close()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
