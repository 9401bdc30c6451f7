package workspace

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/daily/internal/config"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
)

// Layout describes where the workspace tree lives and how its directories
// are named.
type Layout struct {
	// Root is relative to the home directory unless absolute or "~"-prefixed.
	Root string
	// Template is the name of the template directory under Root.
	Template string
	// YearFormat is the Go time layout for year directory names.
	YearFormat string
	// DateFormat is the Go time layout for date directory names.
	DateFormat string
}

// DefaultLayout returns ~/workspace/daily with template, YYYY and MMDD names.
func DefaultLayout() Layout {
	return Layout{
		Root:       config.DefaultRoot,
		Template:   config.DefaultTemplate,
		YearFormat: config.DefaultYearFormat,
		DateFormat: config.DefaultDateFormat,
	}
}

// LayoutFromConfig builds a Layout from loaded configuration.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		Root:       cfg.Root,
		Template:   cfg.Template,
		YearFormat: cfg.YearFormat,
		DateFormat: cfg.DateFormat,
	}
}

// Clock returns the current time.
type Clock func() time.Time

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Paths holds the three workspace paths computed at one instant.
type Paths struct {
	Template string `json:"template"`
	Year     string `json:"year"`
	Date     string `json:"date"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHome sets the home directory provider. Defaults to paths.ResolveHome.
func WithHome(home paths.HomeFunc) Option {
	return func(r *Resolver) { r.home = home }
}

// WithClock sets the clock. Defaults to time.Now.
func WithClock(clock Clock) Option {
	return func(r *Resolver) { r.now = clock }
}

// WithAutoCreate makes Root create the root directory before resolving it.
func WithAutoCreate(enabled bool) Option {
	return func(r *Resolver) { r.autoCreate = enabled }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// Resolver computes workspace paths. The canonical root is resolved once
// and cached for the lifetime of the Resolver.
type Resolver struct {
	layout     Layout
	home       paths.HomeFunc
	now        Clock
	autoCreate bool
	logger     *slog.Logger

	root string
}

// NewResolver creates a Resolver for layout.
func NewResolver(layout Layout, opts ...Option) *Resolver {
	r := &Resolver{
		layout: layout,
		home:   paths.ResolveHome,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Layout returns the layout the Resolver was created with.
func (r *Resolver) Layout() Layout {
	return r.layout
}

// Now returns the current time according to the Resolver's clock, in local time.
func (r *Resolver) Now() time.Time {
	return r.now().Local()
}

// RootPath returns the absolute root path without requiring it to exist.
// Symlinks are not resolved.
func (r *Resolver) RootPath() (string, error) {
	root := r.layout.Root
	if filepath.IsAbs(root) {
		return filepath.Clean(root), nil
	}

	if !strings.HasPrefix(root, "~") {
		root = filepath.Join("~", root)
	}
	expanded, err := paths.ExpandWith(root, r.home)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// Root returns the canonical workspace root: absolute, with every symlink
// evaluated. It fails with errors.ErrCanonicalization when the root does
// not exist, unless the Resolver was created WithAutoCreate.
func (r *Resolver) Root() (string, error) {
	if r.root != "" {
		return r.root, nil
	}

	root, err := r.RootPath()
	if err != nil {
		return "", err
	}

	if r.autoCreate {
		if err := CreateDirs(root); err != nil {
			return "", err
		}
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", errors.Tag(err, errors.ErrCanonicalization, "canonicalization failed for %s", root)
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return "", errors.Tag(err, errors.ErrCanonicalization, "canonicalization failed for %s", root)
	}

	if resolved != root {
		r.logger.Debug("resolved workspace root", "root", root, "resolved", resolved)
	}
	r.root = resolved
	return r.root, nil
}

// Path returns the path of the given kind for the current date.
func (r *Resolver) Path(kind Kind) (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}
	return r.pathAt(root, kind, r.Now())
}

// Paths returns all three paths computed from a single reading of the clock,
// so the year and date never straddle midnight.
func (r *Resolver) Paths() (Paths, error) {
	root, err := r.Root()
	if err != nil {
		return Paths{}, err
	}

	now := r.Now()
	year := now.Format(r.layout.YearFormat)
	return Paths{
		Template: filepath.Join(root, r.layout.Template),
		Year:     filepath.Join(root, year),
		Date:     filepath.Join(root, year, now.Format(r.layout.DateFormat)),
	}, nil
}

func (r *Resolver) pathAt(root string, kind Kind, now time.Time) (string, error) {
	switch kind {
	case KindTemplate:
		return filepath.Join(root, r.layout.Template), nil
	case KindYear:
		return filepath.Join(root, now.Format(r.layout.YearFormat)), nil
	case KindDate:
		return filepath.Join(root, now.Format(r.layout.YearFormat), now.Format(r.layout.DateFormat)), nil
	default:
		return "", errors.Newf("unknown path kind %d", int(kind))
	}
}
