// Package log configures the process-wide slog logger: text or JSON on
// stderr, plus an optional size-rotated JSON file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialisation. Zero values mean info level,
// text format, no file.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json
	File   string // rotated JSON log file, optional
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_FILE.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		File:   os.Getenv("LOG_FILE"),
	}
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	closer  io.Closer
)

// Init builds the logger, installs it as slog.Default and returns it.
func Init(opts Options) *slog.Logger {
	return InitWriter(os.Stderr, opts)
}

// InitWriter is Init with the console output redirected, for tests.
func InitWriter(w io.Writer, opts Options) *slog.Logger {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(w, ho)
	} else {
		console = slog.NewTextHandler(w, ho)
	}

	h := console
	var c io.Closer
	if f := strings.TrimSpace(opts.File); f != "" {
		rot := &lj.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		h = fanout{console, slog.NewJSONHandler(rot, ho)}
		c = rot
	}

	l := slog.New(h).With(slog.String("app", "sketchfolio"))

	mu.Lock()
	if closer != nil {
		_ = closer.Close()
	}
	current, closer = l, c
	mu.Unlock()

	slog.SetDefault(l)
	return l
}

// L returns the configured logger, initialising from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// With returns L() annotated with a component name.
func With(component string) *slog.Logger {
	return L().With(slog.String("component", component))
}

// Close flushes and closes the rotating file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to every handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
