// Package gallery holds the portfolio catalogue and the ratio filter that
// decides which entries are visible.
package gallery

import (
	"errors"
	"fmt"
	"strings"
)

// Item is one authored catalogue entry. Items are values: they are never
// mutated after the catalogue is built.
type Item struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	URL             string `json:"url,omitempty"` // p5 editor URL in its "full" form
	Width           int    `json:"width"`         // native px, 0 for spacers
	Height          int    `json:"height"`        // native px, 0 for spacers
	GridClass       string `json:"gridClass"`     // desktop, e.g. "md:col-span-2"
	MobileGridClass string `json:"mobileGridClass,omitempty"`
	Offset          int    `json:"offset"` // desktop-only vertical shift in px
	IsEmpty         bool   `json:"isEmpty,omitempty"`
	IsText          bool   `json:"isText,omitempty"`
	HideMetadata    bool   `json:"hideMetadata,omitempty"`
	Caption         string `json:"caption,omitempty"`

	// MobileAspect, when > 0, fixes the mobile display height to
	// targetWidth / MobileAspect.
	MobileAspect float64 `json:"-"`
	// MobileOffset replaces the zero mobile offset when set.
	MobileOffset *int `json:"-"`
}

// ErrInvalidItem is returned by Validate for items that break the spacer invariant.
var ErrInvalidItem = errors.New("gallery: invalid item")

// Validate checks the authoring invariants of a single item.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidItem)
	}
	if it.IsEmpty && (it.Width != 0 || it.Height != 0) {
		return fmt.Errorf("%w: spacer %q has size %dx%d", ErrInvalidItem, it.ID, it.Width, it.Height)
	}
	if it.Width < 0 || it.Height < 0 {
		return fmt.Errorf("%w: %q has negative size", ErrInvalidItem, it.ID)
	}
	return nil
}

// ShowTitle reports whether the title line should be rendered under the item.
func (it Item) ShowTitle() bool {
	return !it.IsEmpty && !it.HideMetadata && it.Title != ""
}

// Square reports whether the item has a 1:1 native ratio.
func (it Item) Square() bool { return it.Width == it.Height }

// Landscape reports whether the item is wider than it is tall.
func (it Item) Landscape() bool { return it.Width > it.Height }

// ValidateAll checks every item and rejects duplicate ids.
func ValidateAll(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

func intPtr(v int) *int { return &v }
