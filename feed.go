package sketchfolio

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
}

// handleFeed lists every embedded work, in catalogue order.
func (a *App) handleFeed(c echo.Context) error {
	base := BuildURL(a.Config.URL)
	var items []rssItem
	for _, it := range a.Store.Items() {
		if it.IsEmpty || it.IsText || it.URL == "" {
			continue
		}
		title := it.Title
		if title == "" {
			title = "Sketch " + it.ID
		}
		items = append(items, rssItem{
			Title:       title,
			Link:        it.URL,
			Description: fmt.Sprintf("Interactive sketch, %d×%d.", it.Width, it.Height),
			GUID:        base + "go/" + it.ID,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}
