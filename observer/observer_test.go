package observer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/overlay"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every pending timer, in scheduling order.
func (c *fakeClock) fire() {
	c.mu.Lock()
	pending := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.f()
		}
	}
}

func newObserver(t *testing.T, width float64) (*Observer, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	o := New(gallery.Catalogue(), width, WithAfterFunc(clock.AfterFunc))
	t.Cleanup(o.Close)
	return o, clock
}

func TestMountSchedulesStaggeredMeasurements(t *testing.T) {
	o, clock := newObserver(t, 1200)
	o.Mount()

	assert.Equal(t, uint64(1), o.Trigger())
	assert.Greater(t, o.Height(), 0.0)
	require.Len(t, clock.timers, 3)
	for i, d := range MountDelays {
		assert.Equal(t, d, clock.timers[i].d)
	}

	clock.fire()
	assert.Equal(t, uint64(4), o.Trigger())
}

func TestResizeBumpsTriggerAndRelayouts(t *testing.T) {
	o, _ := newObserver(t, 1200)
	desktop := o.Path()
	o.Resize(600)

	assert.Equal(t, uint64(1), o.Trigger())
	assert.Equal(t, 600.0, o.Width())
	assert.NotEqual(t, desktop, o.Path())
	for _, v := range o.Layout() {
		if v.ID == "a" {
			assert.Equal(t, 24.0, v.DisplayOffset)
		}
	}
}

func TestSetFilterHidesPathAndRemeasuresLater(t *testing.T) {
	o, clock := newObserver(t, 1200)
	o.Mount()
	clock.fire()
	before := o.Trigger()

	o.SetFilter(gallery.Square)
	assert.Equal(t, "", o.Path())
	assert.Equal(t, before, o.Trigger(), "re-measure waits for reflow")
	require.Len(t, clock.timers, 1)
	assert.Equal(t, FilterSettleDelay, clock.timers[0].d)

	clock.fire()
	assert.Equal(t, before+1, o.Trigger())

	o.SetFilter(gallery.Square)
	assert.Empty(t, clock.timers, "same filter is a no-op")

	o.SetFilter(gallery.All)
	assert.NotEqual(t, "", o.Path())
	assert.Len(t, o.Layout(), len(gallery.Catalogue()))
}

func TestTriggerRerunsPathForUnchangedHeight(t *testing.T) {
	o, _ := newObserver(t, 1200)
	o.ReportHeight(900)
	o.ReportBoxes(overlay.Boxes{Rects: map[string]overlay.Rect{"a": {Top: 0, Height: 100}}})
	first := o.Path()
	assert.Contains(t, first, "0,70")

	o.ReportBoxes(overlay.Boxes{Rects: map[string]overlay.Rect{"a": {Top: 50, Height: 100}}})
	assert.Equal(t, 900.0, o.Height())
	assert.Contains(t, o.Path(), "0,120")
}

func TestSubscribersReceiveFrames(t *testing.T) {
	o, _ := newObserver(t, 1200)
	var frames []Frame
	o.Subscribe(func(f Frame) { frames = append(frames, f) })

	o.Resize(1000)
	o.SetFilter(gallery.Landscape)

	require.Len(t, frames, 2)
	assert.Equal(t, 1000.0, frames[0].Width)
	assert.Equal(t, gallery.Landscape, frames[1].Filter)
	assert.Equal(t, "", frames[1].Path)
}

func TestCloseStopsTimersAndIgnoresEvents(t *testing.T) {
	o, clock := newObserver(t, 1200)
	o.Mount()
	o.Close()
	for _, tm := range clock.timers {
		assert.True(t, tm.stopped)
	}
	o.Resize(500)
	assert.Equal(t, 1200.0, o.Width())
}

func TestFiredTimersAreForgotten(t *testing.T) {
	immediate := func(d time.Duration, f func()) Timer {
		f()
		return &fakeTimer{d: d, f: f}
	}
	o := New(gallery.Catalogue(), 1200, WithAfterFunc(immediate))
	t.Cleanup(o.Close)

	filters := []gallery.Filter{gallery.Square, gallery.Landscape}
	for i := 0; i < 2000; i++ {
		o.SetFilter(filters[i%2])
	}
	o.Mount()
	assert.Equal(t, 0, o.Pending())
	assert.Equal(t, uint64(2004), o.Trigger())
}

func TestSetFilterReplacesPendingSettle(t *testing.T) {
	o, clock := newObserver(t, 1200)

	o.SetFilter(gallery.Square)
	o.SetFilter(gallery.Landscape)
	o.SetFilter(gallery.All)
	assert.Equal(t, 1, o.Pending())
	require.Len(t, clock.timers, 3)
	assert.True(t, clock.timers[0].stopped)
	assert.True(t, clock.timers[1].stopped)
	assert.False(t, clock.timers[2].stopped)

	clock.fire()
	assert.Equal(t, uint64(1), o.Trigger())
	assert.Equal(t, 0, o.Pending())
}
