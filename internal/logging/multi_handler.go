package logging

import (
	"context"
	"log/slog"
	"slices"

	"github.com/thoreinstein/daily/internal/errors"
)

// MultiHandler fans each record out to several handlers, such as the
// terminal and a --log-file sink. Each handler applies its own level.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler creates a MultiHandler over sinks.
func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	return &MultiHandler{sinks: slices.Clone(sinks)}
}

// Enabled reports whether any sink handles level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h.sinks, func(s slog.Handler) bool {
		return s.Enabled(ctx, level)
	})
}

// Handle passes a clone of r to every sink enabled at its level. A failing
// sink does not stop the others; their errors are combined.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	for _, s := range h.sinks {
		if s.Enabled(ctx, r.Level) {
			err = errors.CombineErrors(err, s.Handle(ctx, r.Clone()))
		}
	}
	return err
}

// WithAttrs applies attrs to every sink.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup applies the group to every sink.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &MultiHandler{sinks: sinks}
}
