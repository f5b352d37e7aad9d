package sketchfolio

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/views"
)

const (
	// gallerySection is the page anchor for the grid itself.
	gallerySection = "gallery"

	headerHXRequest = "HX-Request"
)

// isPartial reports whether c asks for just the gallery fragment, as the
// filter pills do when swapping the grid in place.
func isPartial(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true" && c.QueryParam("partial") == gallerySection
}

func (a *App) handleHome(c echo.Context) error {
	v := a.Cache.Get(a.viewportWidth(c), filterParam(c))
	if isPartial(c) {
		return renderHTML(c, http.StatusOK, a.Views.GallerySection(v))
	}
	return renderHTML(c, http.StatusOK, a.Views.Home(a.page(v)))
}

func (a *App) handleLayout(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Cache.Get(a.viewportWidth(c), filterParam(c)))
}

func (a *App) handleSection(c echo.Context) error {
	section := c.Param("section")
	if section == gallerySection {
		return c.Redirect(http.StatusSeeOther, "/#"+gallerySection)
	}
	if a.Store.Has(section) {
		return c.Redirect(http.StatusSeeOther, "/#"+views.NodeID(section))
	}
	// Unknown sections are a no-op: land on the page unscrolled.
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /live\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = renderHTML(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", "err", err, "uri", c.Request().RequestURI)
		_ = renderHTML(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// viewportWidth reads ?w=, falling back to the configured default and
// clamping to [0, MaxWidth].
func (a *App) viewportWidth(c echo.Context) float64 {
	return clampWidth(c.QueryParam("w"), a.Config.DefaultWidth, a.Config.MaxWidth)
}

func clampWidth(raw string, fallback, maxWidth float64) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		w = fallback
	}
	return boundWidth(w, maxWidth)
}

func boundWidth(w, maxWidth float64) float64 {
	if math.IsNaN(w) {
		return 0
	}
	return math.Min(math.Max(w, 0), maxWidth)
}

// filterParam reads ?filter=, treating unknown values as ALL.
func filterParam(c echo.Context) gallery.Filter {
	f, err := gallery.ParseFilter(c.QueryParam("filter"))
	if err != nil {
		return gallery.All
	}
	return f
}

func (a *App) page(v views.GalleryView) views.Page {
	return views.Page{
		Site: a.siteView(),
		Meta: views.PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
		},
		Gallery: v,
		Live:    a.Config.LiveEnabled,
		JsonLD:  CollectionJsonLD(a.Config, a.Store.Items()),
	}
}

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
