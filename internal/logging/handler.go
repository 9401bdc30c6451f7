package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colors used by Handler. A nil palette means plain text.
type palette struct {
	time  *color.Color
	key   *color.Color
	trace *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	error *color.Color
}

func newPalette() *palette {
	return &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		error: color.New(color.FgRed, color.Bold),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// Handler is a slog.Handler that writes one short line per record for a
// human reading stderr:
//
//	3:04PM INFO  created workspace path=/home/me/workspace/daily/2024/0315
//
// Colors are used only when the writer supports them.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	// prefix holds attributes added with WithAttrs, already rendered.
	prefix string
	// group is the dotted group path applied to keys, with a trailing dot.
	group string
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle renders the record into a buffer and writes it with a single call.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}

	name := fmt.Sprintf("%-5s", levelName(r.Level))
	if h.colors != nil {
		name = h.colors.level(r.Level).Sprint(name)
	}
	buf.WriteString(name)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.group, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) appendAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	value := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if value.Kind() == slog.KindGroup {
		sub := group
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range value.Group() {
			h.appendAttr(buf, sub, ga)
		}
		return
	}

	fmt.Fprintf(buf, " %s=%v", h.paint(h.keyColor(), group+a.Key), value.Any())
}

// WithAttrs returns a new Handler that renders attrs on every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		h.appendAttr(&buf, h.group, a)
	}

	clone := *h
	clone.prefix = buf.String()
	return &clone
}

// WithGroup returns a new Handler that qualifies later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

func (h *Handler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *Handler) keyColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.key
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// levelName names levels below Debug TRACE rather than "DEBUG-4".
func levelName(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return strings.ToUpper(l.String())
}
