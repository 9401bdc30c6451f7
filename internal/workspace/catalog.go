package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/daily/internal/errors"
)

// Entry is an existing date workspace.
type Entry struct {
	Date time.Time `json:"date"`
	Path string    `json:"path"`
}

// List returns the date workspaces under root, newest first. Directories
// whose names do not parse under the layout's year and date formats are
// ignored, as are hidden entries and the template. A missing root yields an
// empty list.
func List(root string, layout Layout) ([]Entry, error) {
	years, err := yearDirs(root, layout)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, y := range years {
		children, err := os.ReadDir(y.path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading year directory %s", y.path)
		}
		for _, child := range children {
			if !isDir(y.path, child) || strings.HasPrefix(child.Name(), ".") {
				continue
			}
			date, ok := parseDate(y.year, child.Name(), layout)
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Date: date,
				Path: filepath.Join(y.path, child.Name()),
			})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return b.Date.Compare(a.Date)
	})
	return entries, nil
}

// Strays returns directories left behind inside year directories by an
// interrupted provisioning: staging copies and copies still named after the
// template.
func Strays(root string, layout Layout) ([]string, error) {
	years, err := yearDirs(root, layout)
	if err != nil {
		return nil, err
	}

	var strays []string
	for _, y := range years {
		children, err := os.ReadDir(y.path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading year directory %s", y.path)
		}
		for _, child := range children {
			name := child.Name()
			if !child.IsDir() {
				continue
			}
			if strings.HasPrefix(name, stagingPrefix) || name == layout.Template {
				strays = append(strays, filepath.Join(y.path, name))
			}
		}
	}

	slices.Sort(strays)
	return strays, nil
}

type yearDir struct {
	year int
	path string
}

func yearDirs(root string, layout Layout) ([]yearDir, error) {
	children, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading workspace root %s", root)
	}

	var years []yearDir
	for _, child := range children {
		name := child.Name()
		if name == layout.Template || strings.HasPrefix(name, ".") || !isDir(root, child) {
			continue
		}
		t, err := time.ParseInLocation(layout.YearFormat, name, time.Local)
		if err != nil || t.Format(layout.YearFormat) != name {
			continue
		}
		years = append(years, yearDir{year: t.Year(), path: filepath.Join(root, name)})
	}
	return years, nil
}

// parseDate interprets name as a date directory inside the given year.
// The name must round-trip through the date format, which rejects dates
// that do not exist in that year (such as 0229 outside leap years).
func parseDate(year int, name string, layout Layout) (time.Time, bool) {
	t, err := time.ParseInLocation(layout.DateFormat, name, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	date := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	if date.Format(layout.DateFormat) != name {
		return time.Time{}, false
	}
	return date, true
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
