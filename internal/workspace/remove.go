package workspace

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/daily/internal/errors"
)

// RemoveTree removes path and everything below it. Directories lacking
// owner rwx, as a copied read-only template leaves behind, are opened up
// before their contents are unlinked. A missing path is not an error.
func RemoveTree(path string) error {
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		// WalkDir visits a directory before reading it, so this runs in time.
		if perm := info.Mode().Perm(); perm&0o700 != 0o700 {
			if err := os.Chmod(p, perm|0o700); err != nil {
				return errors.Wrapf(err, "making %s writable", p)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return errors.Wrapf(os.RemoveAll(path), "removing %s", path)
}
