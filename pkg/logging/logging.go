// Package logging wraps log/slog behind the same Init-once global the
// teacher's pkg/logger package exposes, generalized to carry attributes
// (the teacher's CustomHandler dropped them) since the app attaches
// per-event fields (pid, action) that the teacher's one-line tree printer
// never needed.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	Logger *slog.Logger
	once   sync.Once
)

// handler is the teacher's CustomHandler, extended to carry accumulated
// attributes and a group prefix through WithAttrs/WithGroup instead of
// discarding them.
type handler struct {
	out   io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	line := fmt.Sprintf("[%s] %s", r.Level, r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		line += fmt.Sprintf(" %s=%v", key, a.Value)
		return true
	})
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *handler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

// Init initializes the global logger at the given level, writing to w. It
// is safe to call concurrently; only the first call takes effect, matching
// the teacher's sync.Once startup-only semantics (spec.md §9: configuration
// and logging setup happen once at startup).
func Init(level slog.Level, w io.Writer) {
	once.Do(func() {
		if w == nil {
			w = os.Stderr
		}
		Logger = slog.New(&handler{out: w, level: level})
	})
}

// Stale logs a collector failure at warn level (spec.md §7: "Collector
// errors ... logged; snapshot from previous tick retained"). It does not
// itself mark anything stale; pkg/app's OnCollectorError does that.
func Stale(err error) {
	if Logger == nil {
		return
	}
	Logger.Warn("collector error, retaining previous snapshot", "error", err)
}
