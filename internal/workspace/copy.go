package workspace

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/logging"
)

// copyStats counts what copyTree did.
type copyStats struct {
	files   int
	dirs    int
	skipped int
}

type copier struct {
	ctx     context.Context
	root    string
	exclude []string
	log     *slog.Logger
	stats   copyStats

	// modes holds copied directories in post-order with the permission bits
	// they get once the whole tree is in place.
	modes []dirMode
}

type dirMode struct {
	path string
	perm fs.FileMode
}

// copyTree recursively copies the directory src to dst, which must not
// exist. Regular files keep their content and permission bits, symlinks are
// recreated as symlinks, and entries whose slash-separated path relative to
// src matches an exclude pattern are skipped along with their contents.
func copyTree(ctx context.Context, src, dst string, exclude []string, log *slog.Logger) (copyStats, error) {
	c := &copier{
		ctx:     ctx,
		root:    src,
		exclude: exclude,
		log:     log,
	}
	if err := c.copyDir(src, dst); err != nil {
		return c.stats, err
	}
	return c.stats, c.applyModes()
}

// applyModes gives every copied directory its source permissions. It runs
// last so a read-only directory never blocks the rest of the copy or the
// removal of a failed one.
func (c *copier) applyModes() error {
	for _, m := range c.modes {
		if err := os.Chmod(m.path, m.perm); err != nil {
			return errors.Wrapf(err, "setting permissions on %s", m.path)
		}
	}
	return nil
}

func (c *copier) excluded(path string) (bool, error) {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return false, err
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.exclude {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Wrapf(err, "matching exclude pattern %q", pattern)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// copyDir creates dst owner-writable and copies the entries of src into it.
// src's permission bits are recorded for applyModes.
func (c *copier) copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stating directory %s", src)
	}
	if err := os.Mkdir(dst, 0o700); err != nil {
		return errors.Wrapf(err, "creating directory %s", dst)
	}
	c.stats.dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		if err := c.ctx.Err(); err != nil {
			return err
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		skip, err := c.excluded(srcPath)
		if err != nil {
			return err
		}
		if skip {
			c.log.Log(c.ctx, logging.LevelTrace, "excluded from copy", "path", srcPath)
			c.stats.skipped++
			continue
		}

		switch mode := entry.Type(); {
		case mode&fs.ModeSymlink != 0:
			err = c.copySymlink(srcPath, dstPath)
		case mode.IsDir():
			err = c.copyDir(srcPath, dstPath)
		case mode.IsRegular():
			err = c.copyFile(srcPath, dstPath)
		default:
			c.log.Debug("skipping special file", "path", srcPath, "mode", mode.String())
			c.stats.skipped++
		}
		if err != nil {
			return err
		}
	}

	c.modes = append(c.modes, dirMode{path: dst, perm: info.Mode().Perm()})
	return nil
}

// copyFile copies a single file from src to dst.
func (c *copier) copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying content from %s to %s", src, dst)
	}
	// The umask may have dropped bits at create time.
	if err := dstFile.Chmod(srcInfo.Mode().Perm()); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "setting permissions on %s", dst)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing destination file %s", dst)
	}

	c.stats.files++
	return nil
}

// copySymlink recreates the link at src with the same target.
func (c *copier) copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "reading symlink %s", src)
	}
	if err := os.Symlink(target, dst); err != nil {
		return errors.Wrapf(err, "creating symlink %s", dst)
	}
	c.stats.files++
	return nil
}
