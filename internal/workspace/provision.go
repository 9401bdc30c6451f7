package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
)

// stagingPrefix names the in-progress copy of the template inside a year
// directory. Leftovers with this prefix are reported by Strays.
const stagingPrefix = ".template-"

// CreateDirs creates dir and all missing ancestors. It succeeds if dir
// already exists.
func CreateDirs(dir string) error {
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return errors.Tag(err, errors.ErrDirectoryCreation, "failed to create directory %s", dir)
	}
	return nil
}

// Provisioner creates date workspaces from the template.
type Provisioner struct {
	// Exclude holds doublestar patterns, relative to the template, for
	// entries that are not copied.
	Exclude []string

	// Logger receives progress messages. Defaults to slog.Default.
	Logger *slog.Logger

	// newID names staging directories; replaced in tests.
	newID func() string
}

// NewProvisioner creates a Provisioner that skips entries matching exclude.
func NewProvisioner(exclude []string, logger *slog.Logger) *Provisioner {
	return &Provisioner{Exclude: exclude, Logger: logger}
}

func (p *Provisioner) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Provisioner) stagingName() string {
	if p.newID != nil {
		return stagingPrefix + p.newID()
	}
	return stagingPrefix + uuid.NewString()
}

// EnsureDateWorkspace makes sure date exists, copying template into it when
// it does not. It reports whether a new workspace was created.
//
// If date already exists the template is never read. Otherwise the template
// must be a directory (errors.ErrTemplateMissing); year is created as
// needed, the template is copied into a staging directory inside year, and
// the staging directory is renamed to date. A failed copy or rename removes
// the staging directory. If date appears while the copy is in progress, the
// copy is discarded and the existing workspace wins.
func (p *Provisioner) EnsureDateWorkspace(ctx context.Context, template, year, date string) (bool, error) {
	log := p.logger().With("date", date)

	exists, err := pathExists(date)
	if err != nil {
		return false, err
	}
	if exists {
		log.Debug("date workspace already exists")
		return false, nil
	}

	info, err := os.Stat(template)
	switch {
	case err != nil && os.IsNotExist(err):
		return false, errors.Tag(nil, errors.ErrTemplateMissing, "workspace template directory does not exist: %s", template)
	case err != nil:
		return false, errors.Tag(err, errors.ErrTemplateMissing, "workspace template directory is not accessible: %s", template)
	case !info.IsDir():
		return false, errors.Tag(nil, errors.ErrTemplateMissing, "workspace template is not a directory: %s", template)
	}

	if err := CreateDirs(year); err != nil {
		return false, err
	}

	staging := filepath.Join(year, p.stagingName())
	log.Info("copying template", "template", template, "staging", staging)

	stats, err := copyTree(ctx, template, staging, p.Exclude, log)
	if err != nil {
		p.discard(staging)
		return false, errors.Tag(err, errors.ErrCopyFailed, "failed to copy template directory")
	}
	log.Debug("template copied", "files", stats.files, "dirs", stats.dirs, "skipped", stats.skipped)

	if err := os.Rename(staging, date); err != nil {
		p.discard(staging)
		if exists, _ := pathExists(date); exists {
			log.Warn("date workspace was created concurrently; discarding copy")
			return false, nil
		}
		return false, errors.Tag(err, errors.ErrRenameFailed, "failed to rename copied directory")
	}

	log.Info("created date workspace")
	return true, nil
}

func (p *Provisioner) discard(staging string) {
	if err := RemoveTree(staging); err != nil {
		p.logger().Warn("failed to remove staging directory", "path", staging, "error", err)
	}
}

// pathExists reports whether path names an existing filesystem entry,
// following symlinks.
func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, "checking %s", path)
	}
}
