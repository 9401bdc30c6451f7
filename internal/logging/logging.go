package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/daily/internal/errors"
)

// Format selects how records are rendered on the primary output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", errors.Newf("invalid log format %q", s)
	}
}

// LevelTrace is below slog.LevelDebug and enabled with -vvv.
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps the count of -v flags to a log level.
// Zero (or negative) shows warnings and errors only.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv translates a DAILY_DEBUG value into a -v count:
// "1" or "true" means debug, "2" means trace. Anything else is zero.
func VerbosityFromEnv(val string) int {
	switch val {
	case "1", "true":
		return 2
	case "2":
		return 3
	}
	return 0
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// Config describes a logger.
type Config struct {
	Level  slog.Level
	Format Format
	// Output receives formatted records. Nil means os.Stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON.
	File io.Writer
}

// New builds a logger from cfg. An unrecognized Format renders as text.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var primary slog.Handler
	if cfg.Format == FormatJSON {
		primary = slog.NewJSONHandler(out, opts)
	} else {
		primary = NewHandler(out, opts)
	}

	if cfg.File == nil {
		return slog.New(primary)
	}
	return slog.New(NewMultiHandler(primary, slog.NewJSONHandler(cfg.File, opts)))
}

// ForTest returns a debug-level logger writing to t's output, so records
// appear alongside the test that produced them.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: t.Output(),
	})
}
