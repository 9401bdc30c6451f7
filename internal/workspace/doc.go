// Package workspace resolves and provisions the date-organized workspace
// tree.
//
// The tree lives under a root derived from the home directory
// (~/workspace/daily by default):
//
//	<root>/template/       user-maintained source tree
//	<root>/<YYYY>/         one directory per year
//	<root>/<YYYY>/<MMDD>/  one workspace per day, copied from template
//
// A [Resolver] computes the three paths from an injected clock and home
// directory. [Provisioner.EnsureDateWorkspace] creates the day's workspace
// by copying the template into a staging directory next to it and renaming
// the copy into place, so a failed copy never leaves a half-built workspace
// under the final name. [List] and [Strays] scan an existing tree.
package workspace
