// Package observer keeps one viewer's reactive snapshot (viewport width,
// filter, container height and a re-measure trigger) and recomputes the
// gallery layout and overlay path from it.
package observer

import (
	"sync"
	"time"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/layout"
	"github.com/eringen/sketchfolio/overlay"
	"github.com/eringen/sketchfolio/reactive"
)

// FilterSettleDelay lets the grid reflow before re-measuring after a filter
// change.
const FilterSettleDelay = 50 * time.Millisecond

// MountDelays are the staggered re-measurements after Mount. Late-loading
// embeds change the container height after the first paint.
var MountDelays = []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 1500 * time.Millisecond}

// Timer is the part of *time.Timer the observer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Frame is the derived state pushed to subscribers.
type Frame struct {
	Trigger uint64               `json:"trigger"`
	Filter  gallery.Filter       `json:"filter"`
	Width   float64              `json:"width"`
	Height  float64              `json:"height"`
	Metrics layout.Metrics       `json:"metrics"`
	Items   []layout.VisibleItem `json:"items"`
	Path    string               `json:"path"`
}

// Option configures an Observer.
type Option func(*Observer)

// WithAfterFunc replaces the timer source, for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *Observer) { o.after = fn }
}

// WithSanitizer replaces the embed URL sanitizer.
func WithSanitizer(s layout.Sanitizer) Option {
	return func(o *Observer) { o.sanitize = s }
}

// Observer owns the reactive snapshot for one viewer. Writers are the
// handler methods below; derived values are recomputed lazily on read.
type Observer struct {
	items []gallery.Item

	width   *reactive.Signal[float64]
	filter  *reactive.Signal[gallery.Filter]
	height  *reactive.Signal[float64]
	trigger *reactive.Signal[uint64]

	layout *reactive.Computed[[]layout.VisibleItem]
	path   *reactive.Computed[string]

	after    AfterFunc
	sanitize layout.Sanitizer

	mu       sync.Mutex
	reported overlay.Measurer
	repH     float64
	timers   map[uint64]Timer
	timerSeq uint64
	settle   uint64
	subs     []func(Frame)
	closed   bool
}

// New returns an observer over items at the given initial width.
func New(items []gallery.Item, width float64, opts ...Option) *Observer {
	o := &Observer{
		items:   append([]gallery.Item(nil), items...),
		width:   reactive.NewValue(width),
		filter:  reactive.NewValue(gallery.All),
		height:  reactive.NewValue(0.0),
		trigger: reactive.NewValue(uint64(0)),
		after:   realAfterFunc,
		timers:  make(map[uint64]Timer),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.layout = reactive.NewComputed(func() []layout.VisibleItem {
		f := o.filter.Get()
		return layout.Compute(gallery.SelectVisible(o.items, f), o.width.Get(), f, o.sanitize)
	}, o.width, o.filter)

	o.path = reactive.NewComputed(func() string {
		o.height.Get()
		return overlay.Compute(o.measurer(), o.width.Get(), o.filter.Get())
	}, o.layout, o.height, o.trigger)

	return o
}

func (o *Observer) measurer() overlay.Measurer {
	o.mu.Lock()
	m := o.reported
	o.mu.Unlock()
	if m != nil {
		return m
	}
	return overlay.NewGridMeasurer(o.layout.Get(), o.width.Get())
}

// Layout returns the current visible items with render properties.
func (o *Observer) Layout() []layout.VisibleItem { return o.layout.Get() }

// Path returns the current overlay points.
func (o *Observer) Path() string { return o.path.Get() }

// Filter returns the active filter.
func (o *Observer) Filter() gallery.Filter { return o.filter.Get() }

// Width returns the viewport width.
func (o *Observer) Width() float64 { return o.width.Get() }

// Height returns the last measured container height.
func (o *Observer) Height() float64 { return o.height.Get() }

// Trigger returns the re-measure counter.
func (o *Observer) Trigger() uint64 { return o.trigger.Get() }

// Frame snapshots the derived state.
func (o *Observer) Frame() Frame {
	w := o.width.Get()
	return Frame{
		Trigger: o.trigger.Get(),
		Filter:  o.filter.Get(),
		Width:   w,
		Height:  o.height.Get(),
		Metrics: layout.MetricsFor(w),
		Items:   o.layout.Get(),
		Path:    o.path.Get(),
	}
}

// Subscribe registers fn to receive a frame after every change.
func (o *Observer) Subscribe(fn func(Frame)) {
	o.mu.Lock()
	o.subs = append(o.subs, fn)
	o.mu.Unlock()
}

// Resize handles a viewport resize.
func (o *Observer) Resize(width float64) {
	if o.isClosed() {
		return
	}
	o.width.Set(width)
	o.mu.Lock()
	o.reported = nil
	o.repH = 0
	o.mu.Unlock()
	o.updateHeight()
}

// ContentResized handles a container box-size change.
func (o *Observer) ContentResized() {
	if o.isClosed() {
		return
	}
	o.updateHeight()
}

// ReportHeight records a client-measured container height.
func (o *Observer) ReportHeight(h float64) {
	o.mu.Lock()
	o.repH = h
	o.mu.Unlock()
	o.ContentResized()
}

// ReportBoxes records client-measured item boxes for the overlay.
func (o *Observer) ReportBoxes(b overlay.Boxes) {
	o.mu.Lock()
	o.reported = b
	o.mu.Unlock()
	o.ContentResized()
}

// SetFilter switches the ratio filter and re-measures once the new grid has
// had time to reflow.
func (o *Observer) SetFilter(f gallery.Filter) {
	if o.isClosed() || !o.filter.Set(f) {
		return
	}
	o.mu.Lock()
	o.reported = nil
	o.repH = 0
	prev := o.settle
	o.settle = 0
	if t := o.timers[prev]; t != nil {
		t.Stop()
	}
	delete(o.timers, prev)
	o.mu.Unlock()
	o.publish()
	id := o.schedule(FilterSettleDelay)
	o.mu.Lock()
	if _, pending := o.timers[id]; pending && o.settle == 0 {
		o.settle = id
	}
	o.mu.Unlock()
}

// Mount measures immediately and again after each of MountDelays.
func (o *Observer) Mount() {
	if o.isClosed() {
		return
	}
	o.updateHeight()
	for _, d := range MountDelays {
		o.schedule(d)
	}
}

// Close cancels pending re-measurements. Later events are ignored.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	for _, t := range o.timers {
		if t != nil {
			t.Stop()
		}
	}
	clear(o.timers)
	o.subs = nil
}

// Pending returns the number of scheduled re-measurements not yet run.
func (o *Observer) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.timers)
}

func (o *Observer) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// schedule arms a re-measure after d and returns its id. A timer removes
// itself from o.timers when it fires; the entry is nil until after returns.
func (o *Observer) schedule(d time.Duration) uint64 {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return 0
	}
	o.timerSeq++
	id := o.timerSeq
	o.timers[id] = nil
	o.mu.Unlock()

	t := o.after(d, func() {
		o.mu.Lock()
		_, pending := o.timers[id]
		delete(o.timers, id)
		if o.settle == id {
			o.settle = 0
		}
		o.mu.Unlock()
		if pending && !o.isClosed() {
			o.updateHeight()
		}
	})

	o.mu.Lock()
	if _, pending := o.timers[id]; pending && !o.closed {
		o.timers[id] = t
	} else if o.closed {
		t.Stop()
	}
	o.mu.Unlock()
	return id
}

// updateHeight re-measures the container and bumps the trigger so the path
// reruns even when the measured value is unchanged.
func (o *Observer) updateHeight() {
	o.mu.Lock()
	h := o.repH
	o.mu.Unlock()
	if h <= 0 {
		h = overlay.NewGridMeasurer(o.layout.Get(), o.width.Get()).Height()
	}
	o.height.Set(h)
	o.trigger.Update(func(v uint64) uint64 { return v + 1 })
	o.publish()
}

func (o *Observer) publish() {
	o.mu.Lock()
	subs := append([]func(Frame){}, o.subs...)
	o.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	f := o.Frame()
	for _, fn := range subs {
		fn(f)
	}
}
