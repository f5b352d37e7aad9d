package gallery

import "github.com/eringen/sketchfolio/reactive"

// Store owns the catalogue and the active filter. The item list is copied on
// the way in and on the way out, so callers never share it mutably.
type Store struct {
	items   []Item
	index   map[string]int
	filter  *reactive.Signal[Filter]
	visible *reactive.Computed[[]Item]
}

// NewStore validates items and wraps them with an ALL filter.
func NewStore(items []Item) (*Store, error) {
	if err := ValidateAll(items); err != nil {
		return nil, err
	}
	s := &Store{
		items:  append([]Item(nil), items...),
		index:  make(map[string]int, len(items)),
		filter: reactive.NewValue(All),
	}
	for i, it := range s.items {
		s.index[it.ID] = i
	}
	s.visible = reactive.NewComputed(func() []Item {
		return SelectVisible(s.items, s.filter.Get())
	}, s.filter)
	return s, nil
}

// Items returns a copy of the full catalogue.
func (s *Store) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Get looks up an item by id.
func (s *Store) Get(id string) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Has reports whether id names a catalogue entry.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Filter returns the active filter.
func (s *Store) Filter() Filter { return s.filter.Get() }

// FilterSignal exposes the filter for derived computations.
func (s *Store) FilterSignal() *reactive.Signal[Filter] { return s.filter }

// SetFilter changes the active filter and reports whether it changed.
func (s *Store) SetFilter(f Filter) bool { return s.filter.Set(f) }

// Visible returns the filtered items for the active filter.
func (s *Store) Visible() []Item {
	return append([]Item(nil), s.visible.Get()...)
}
