package sketchfolio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/sketchfolio/gallery"
	applog "github.com/eringen/sketchfolio/internal/log"
	"github.com/eringen/sketchfolio/layout"
	"github.com/eringen/sketchfolio/sketch"
)

// SiteConfig holds all configuration for a portfolio site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Portfolio")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Meta description
	Author      string `yaml:"author"`      // Author name for JSON-LD

	Addr string `yaml:"addr"` // Listen address (default ":3000")

	DefaultWidth float64 `yaml:"default_width"` // Viewport assumed when the client sends none (default 1200)
	MaxWidth     float64 `yaml:"max_width"`     // Upper clamp for reported widths (default 10000)

	LayoutCacheTTL time.Duration `yaml:"layout_cache_ttl"` // default 5m

	LiveEnabled   bool `yaml:"live"`            // websocket re-layout channel (on unless disabled)
	LivePerMinute int  `yaml:"live_per_minute"` // new live connections per IP per minute (default 30)

	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors internal/log options in the config file.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func (l LogConfig) Options() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, File: l.File}
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DefaultWidth <= 0 {
		c.DefaultWidth = 1200
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = 10000
	}
	if c.LayoutCacheTTL == 0 {
		c.LayoutCacheTTL = 5 * time.Minute
	}
	if c.LivePerMinute <= 0 {
		c.LivePerMinute = 30
	}
}

// LoadConfig reads an optional YAML file, then applies environment
// overrides and defaults. A missing file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{LiveEnabled: true}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("sketchfolio: read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("sketchfolio: parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("SITE_NAME", &c.Name)
	setString("SITE_URL", &c.URL)
	setString("SITE_DESCRIPTION", &c.Description)
	setString("SITE_AUTHOR", &c.Author)
	setString("ADDR", &c.Addr)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("LOG_FILE", &c.Log.File)

	if v := os.Getenv("DEFAULT_WIDTH"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("sketchfolio: DEFAULT_WIDTH: %w", err)
		}
		c.DefaultWidth = w
	}
	if v := os.Getenv("LIVE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("sketchfolio: LIVE_ENABLED: %w", err)
		}
		c.LiveEnabled = b
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCatalogue replaces the built-in catalogue.
func WithCatalogue(items []gallery.Item) Option {
	return func(a *App) {
		a.items = items
	}
}

// WithSketches replaces the poster registry.
func WithSketches(r *sketch.Registry) Option {
	return func(a *App) {
		a.Sketches = r
	}
}

// WithViews replaces some or all of the rendered components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithSanitizer replaces the embed URL sanitizer.
func WithSanitizer(s layout.Sanitizer) Option {
	return func(a *App) {
		a.sanitize = s
	}
}
