// Package obslog bridges this repository's two logging conventions: the
// core pkg/websocket library logs through [log/slog], while cmd/wsprobe
// and its CLI-layer flags are built around [zerolog]. [Handler] lets a
// single configured zerolog.Logger back a *slog.Logger, so one
// --log-format flag controls the formatting of both.
package obslog

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// Handler implements [slog.Handler] on top of a [zerolog.Logger].
type Handler struct {
	zl    zerolog.Logger
	attrs []slog.Attr
	group string
}

// New wraps zl as a *slog.Logger.
func New(zl zerolog.Logger) *slog.Logger {
	return slog.New(&Handler{zl: zl})
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.zl.GetLevel() <= zerologLevel(level)
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	e := h.zl.WithLevel(zerologLevel(r.Level))
	for _, a := range h.attrs {
		e = addAttr(e, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		e = addAttr(e, h.group, a)
		return true
	})
	e.Msg(r.Message)
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	next := *h
	if h.group != "" {
		next.group = h.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

func addAttr(e *zerolog.Event, group string, a slog.Attr) *zerolog.Event {
	if a.Equal(slog.Attr{}) {
		return e
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return e.Any(key, a.Value.Any())
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
