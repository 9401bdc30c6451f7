package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"

	"github.com/thoreinstein/daily/internal/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "daily"

// DefaultDirPerm is the permission for directories created inside the workspace.
const DefaultDirPerm = 0o755

func init() {
	// HOME is read on every call so overrides (tests, sudo -E) take effect.
	homedir.DisableCache = true
}

// HomeFunc returns the current user's home directory.
type HomeFunc func() (string, error)

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns errors.ErrHomeNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		msg := "empty home directory"
		if err != nil {
			msg = err.Error()
		}
		return "", errors.Wrap(errors.ErrHomeNotFound, msg)
	}
	return home, nil
}

// Expand replaces a leading "~" in path with the user's home directory.
// Paths without a leading "~" are returned unchanged.
func Expand(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrHomeNotFound, "expanding %q: %v", path, err)
	}
	return expanded, nil
}

// ExpandWith is Expand for an injected home provider. It follows the
// same rules as go-homedir: "~" and "~/..." are expanded, "~user" is an
// error. home is only called when path starts with "~".
func ExpandWith(path string, home HomeFunc) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.Newf("cannot expand user-specific home directory in %q", path)
	}

	dir, err := home()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.Wrap(errors.ErrHomeNotFound, "empty home directory")
	}
	return filepath.Join(dir, path[1:]), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding the daily config file.
// DAILY_CONFIG_DIR overrides the XDG location.
func ConfigDir() string {
	if dir := os.Getenv("DAILY_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
