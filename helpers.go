package sketchfolio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/sketchfolio/gallery"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// CollectionJsonLD returns a JSON-LD string for a CollectionPage schema
// listing the catalogue's titled works.
func CollectionJsonLD(cfg SiteConfig, items []gallery.Item) string {
	var parts []map[string]string
	for _, it := range items {
		if it.IsEmpty || it.IsText || it.URL == "" {
			continue
		}
		name := it.Title
		if name == "" {
			name = "Sketch " + it.ID
		}
		parts = append(parts, map[string]string{
			"@type": "VisualArtwork",
			"name":  name,
			"url":   it.URL,
		})
	}
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "CollectionPage",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
		"hasPart":  parts,
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
