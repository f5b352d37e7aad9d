package sketchfolio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sketchfolio/gallery"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority,omitempty"`
}

// renderSitemap lists the page once per filter view.
func (a *App) renderSitemap(c echo.Context) error {
	base := BuildURL(a.Config.URL)
	urls := []sitemapURL{{Loc: base, Priority: "1.0"}}
	for _, f := range gallery.Filters {
		if !f.Filtering() {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:      base + "?filter=" + f.String(),
			Priority: "0.5",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
