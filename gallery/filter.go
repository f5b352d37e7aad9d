package gallery

import (
	"errors"
	"fmt"
	"strings"
)

// Filter selects items by native aspect ratio.
type Filter int

const (
	All Filter = iota
	Square
	Landscape
)

// ErrUnknownFilter is returned by ParseFilter for unrecognised names.
var ErrUnknownFilter = errors.New("gallery: unknown filter")

// Filters lists every filter in control order.
var Filters = []Filter{All, Square, Landscape}

func (f Filter) String() string {
	switch f {
	case Square:
		return "SQUARE"
	case Landscape:
		return "LANDSCAPE"
	default:
		return "ALL"
	}
}

// Filtering reports whether a ratio filter is active.
func (f Filter) Filtering() bool { return f != All }

// ParseFilter parses ALL, SQUARE or LANDSCAPE, ignoring case and whitespace.
// An empty string is ALL.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return All, nil
	case "SQUARE":
		return Square, nil
	case "LANDSCAPE":
		return Landscape, nil
	}
	return All, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Filter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(b []byte) error {
	v, err := ParseFilter(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// SelectVisible returns the items that pass filter, in catalogue order.
// Text items always pass; spacers are dropped while a ratio filter is active
// so the grid packs without gaps.
func SelectVisible(items []Item, filter Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if keep(it, filter) {
			out = append(out, it)
		}
	}
	return out
}

func keep(it Item, filter Filter) bool {
	if it.IsText {
		return true
	}
	if !filter.Filtering() {
		return true
	}
	if it.IsEmpty {
		return false
	}
	switch filter {
	case Square:
		return it.Square()
	case Landscape:
		return it.Landscape()
	}
	return true
}
