package doctor

import (
	"github.com/thoreinstein/daily/internal/paths"
	"github.com/thoreinstein/daily/internal/workspace"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a slice of FixResult indicating what was fixed or why it couldn't be fixed.
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// removeFixer deletes directories found by a check.
type removeFixer struct {
	targets []string
}

// CanFix returns true if there is anything to remove.
func (f *removeFixer) CanFix() bool {
	return len(f.targets) > 0
}

// Fix removes every target directory.
func (f *removeFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.targets))
	for _, path := range f.targets {
		if err := workspace.RemoveTree(path); err != nil {
			results = append(results, FixResult{
				Path:        path,
				Description: "failed to remove leftover directory",
				Error:       err,
			})
			continue
		}
		results = append(results, FixResult{
			Path:        path,
			Fixed:       true,
			Description: "removed leftover directory",
		})
	}
	return results
}

// mkdirFixer creates a missing directory.
type mkdirFixer struct {
	target string
}

// CanFix returns true if a directory needs to be created.
func (f *mkdirFixer) CanFix() bool {
	return f.target != ""
}

// Fix creates the directory and its parents.
func (f *mkdirFixer) Fix() []FixResult {
	if err := paths.EnsureDir(f.target, paths.DefaultDirPerm); err != nil {
		return []FixResult{{
			Path:        f.target,
			Description: "failed to create directory",
			Error:       err,
		}}
	}
	return []FixResult{{
		Path:        f.target,
		Fixed:       true,
		Description: "created directory",
	}}
}
