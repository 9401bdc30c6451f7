// Package paths provides home and configuration directory resolution for
// the daily CLI.
//
// # XDG Base Directory Compliance
//
// The configuration directory follows github.com/adrg/xdg, so the config
// file lives at ~/.config/daily/config.yaml on Linux and under
// ~/Library/Application Support/daily on macOS.
//
// # Home Directory
//
// [ResolveHome] wraps os.UserHomeDir and reports failures as
// errors.ErrHomeNotFound. [Expand] resolves a leading "~" in user-supplied
// paths such as the configured workspace root.
package paths
