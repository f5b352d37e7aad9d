package sketchfolio

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/observer"
)

func dialLive(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live" + query
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial: %v (status %d)", err, status)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// readUntil reads frames until ok accepts one or the deadline passes.
func readUntil(t *testing.T, ws *websocket.Conn, ok func(observer.Frame) bool) observer.Frame {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	_ = ws.SetReadDeadline(deadline)
	for {
		var f observer.Frame
		if err := ws.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if ok(f) {
			return f
		}
	}
}

func TestLiveMountResizeAndFilter(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Echo)
	defer srv.Close()

	ws := dialLive(t, srv, "?w=1200")
	if err := ws.WriteJSON(map[string]any{"type": "mount"}); err != nil {
		t.Fatal(err)
	}
	f := readUntil(t, ws, func(f observer.Frame) bool { return f.Trigger >= 1 })
	if f.Width != 1200 || f.Path == "" || len(f.Items) != len(gallery.Catalogue()) {
		t.Errorf("mount frame: width %v path %q items %d", f.Width, f.Path, len(f.Items))
	}

	if err := ws.WriteJSON(map[string]any{"type": "resize", "width": 600}); err != nil {
		t.Fatal(err)
	}
	f = readUntil(t, ws, func(f observer.Frame) bool { return f.Width == 600 })
	if !f.Metrics.Mobile {
		t.Errorf("600px frame should be mobile: %+v", f.Metrics)
	}

	if err := ws.WriteJSON(map[string]any{"type": "filter", "filter": "SQUARE"}); err != nil {
		t.Fatal(err)
	}
	f = readUntil(t, ws, func(f observer.Frame) bool { return f.Filter == gallery.Square })
	if f.Path != "" || len(f.Items) != 2 {
		t.Errorf("SQUARE frame: path %q items %d", f.Path, len(f.Items))
	}
}

func TestLiveReportedBoxesDrivePath(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Echo)
	defer srv.Close()

	ws := dialLive(t, srv, "")
	msg := map[string]any{
		"type":         "boxes",
		"containerTop": 100,
		"boxes": map[string]any{
			"a": map[string]float64{"top": 100, "height": 200},
		},
	}
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatal(err)
	}
	f := readUntil(t, ws, func(f observer.Frame) bool { return f.Trigger >= 1 })
	if !strings.HasPrefix(f.Path, "0,120 ") {
		t.Errorf("path = %q, want first point 0,120", f.Path)
	}
}

func TestLiveIgnoresMalformedMessages(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Echo)
	defer srv.Close()

	ws := dialLive(t, srv, "?w=900")
	for _, raw := range []string{
		"not json",
		`{"type":"resize","width":"wide"}`,
		`{"type":`,
	} {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range []map[string]any{
		{"type": "teleport"},
		{"type": "filter", "filter": "PORTRAIT"},
		{"type": "boxes"},
		{"type": "mount"},
	} {
		if err := ws.WriteJSON(m); err != nil {
			t.Fatal(err)
		}
	}
	f := readUntil(t, ws, func(f observer.Frame) bool { return f.Trigger >= 1 })
	if f.Filter != gallery.All || f.Width != 900 {
		t.Errorf("frame = filter %v width %v", f.Filter, f.Width)
	}
}

func TestLiveRateLimited(t *testing.T) {
	a := newTestApp(t, func(a *App) { a.Config.LivePerMinute = 1 })
	srv := httptest.NewServer(a.Echo)
	defer srv.Close()

	dialLive(t, srv, "")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second connection should be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("resp = %v, want 429", resp)
	}
}

func TestLatestFrameDropsStaleTriggers(t *testing.T) {
	l := newLatestFrame()
	l.put(observer.Frame{Trigger: 3, Width: 300})
	l.put(observer.Frame{Trigger: 2, Width: 200})
	if f := <-l.ch; f.Trigger != 3 {
		t.Fatalf("buffered trigger = %d, want 3", f.Trigger)
	}

	l.put(observer.Frame{Trigger: 1})
	select {
	case f := <-l.ch:
		t.Fatalf("stale frame delivered: trigger %d", f.Trigger)
	default:
	}

	l.put(observer.Frame{Trigger: 3, Filter: gallery.Square})
	if f := <-l.ch; f.Filter != gallery.Square {
		t.Errorf("same-trigger frame not delivered: %+v", f)
	}
}
