package sketchfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/eringen/sketchfolio/gallery"
	"github.com/eringen/sketchfolio/observer"
	"github.com/eringen/sketchfolio/overlay"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
	liveReadLimit  = 64 << 10
)

var errBadLiveMessage = errors.New("sketchfolio: malformed live message")

// liveMessage is a client event on /live. Type selects which fields apply.
type liveMessage struct {
	Type   string  `json:"type"` // resize|height|filter|mount|boxes
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Filter string  `json:"filter"`
	overlay.Boxes
}

// latestFrame is a one-slot mailbox: a new frame replaces an unsent one.
// Frames published from timer goroutines can arrive late; one older than
// the newest trigger already accepted is dropped.
type latestFrame struct {
	mu   sync.Mutex
	ch   chan observer.Frame
	last uint64
}

func newLatestFrame() *latestFrame {
	return &latestFrame{ch: make(chan observer.Frame, 1)}
}

func (l *latestFrame) put(f observer.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f.Trigger < l.last {
		return
	}
	l.last = f.Trigger
	select {
	case <-l.ch:
	default:
	}
	l.ch <- f
}

func (a *App) handleLive(c echo.Context) error {
	if !a.liveLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many live connections")
	}
	ws, err := a.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the client.
		a.Log.Debug("live upgrade failed", "err", err)
		return nil
	}
	defer ws.Close()

	log := a.Log.With("ip", c.RealIP())
	obs := observer.New(a.Store.Items(), a.viewportWidth(c), observer.WithSanitizer(a.sanitize))
	defer obs.Close()

	frames := newLatestFrame()
	obs.Subscribe(frames.put)

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go a.liveWriter(ws, frames, done, writerDone)

	ws.SetReadLimit(liveReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(livePongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(livePongWait))
	})

	log.Debug("live connected")
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("live read", "err", err)
			}
			break
		}
		var msg liveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("live message ignored", "err", fmt.Errorf("%w: %v", errBadLiveMessage, err))
			continue
		}
		if err := a.dispatchLive(obs, msg); err != nil {
			log.Debug("live message ignored", "err", err)
		}
	}
	close(done)
	<-writerDone
	log.Debug("live disconnected")
	return nil
}

// liveWriter owns all writes to ws except Close.
func (a *App) liveWriter(ws *websocket.Conn, frames *latestFrame, done <-chan struct{}, writerDone chan<- struct{}) {
	defer close(writerDone)
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(liveWriteWait))
			return
		case f := <-frames.ch:
			_ = ws.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := ws.WriteJSON(f); err != nil {
				a.Log.Debug("live write", "err", err)
				// Unblocks the reader.
				_ = ws.Close()
				<-done
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				_ = ws.Close()
				<-done
				return
			}
		}
	}
}

func (a *App) dispatchLive(obs *observer.Observer, msg liveMessage) error {
	switch msg.Type {
	case "resize":
		obs.Resize(boundWidth(msg.Width, a.Config.MaxWidth))
	case "height":
		obs.ReportHeight(msg.Height)
	case "filter":
		f, err := gallery.ParseFilter(msg.Filter)
		if err != nil {
			return err
		}
		obs.SetFilter(f)
	case "mount":
		obs.Mount()
	case "boxes":
		if len(msg.Rects) == 0 {
			return fmt.Errorf("%w: empty boxes", errBadLiveMessage)
		}
		obs.ReportBoxes(msg.Boxes)
	default:
		return fmt.Errorf("%w: %q", errBadLiveMessage, msg.Type)
	}
	return nil
}
