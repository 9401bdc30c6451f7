// Package fileutil provides atomic file writes.
package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/daily/internal/errors"
)

// tempPattern names temp files so they stay hidden next to their target.
const tempPattern = ".daily-atomic-*.tmp"

// AtomicWrite streams content produced by write into path using a temp file
// in the same directory followed by a rename. An interrupted or failed write
// leaves any existing file untouched and no temp file behind.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWrite(path string, perm os.FileMode, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// AtomicWriteYAML writes v as two-space indented YAML to path atomically
// with 0644 permissions.
func AtomicWriteYAML(path string, v any) error {
	return AtomicWrite(path, 0o644, func(w io.Writer) (err error) {
		// yaml.v3 panics on some unmarshalable types.
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("marshaling YAML: %v", r)
			}
		}()

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "marshaling YAML")
		}
		return errors.Wrap(enc.Close(), "flushing YAML")
	})
}
