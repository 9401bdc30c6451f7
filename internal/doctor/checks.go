package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/daily/internal/paths"
	"github.com/thoreinstein/daily/internal/workspace"
)

// Target describes the workspace tree being diagnosed.
type Target struct {
	// Home returns the home directory. Defaults to paths.ResolveHome.
	Home paths.HomeFunc

	// Layout is the configured workspace layout.
	Layout workspace.Layout

	// ConfigFile is the config file in use, or its default location.
	ConfigFile string

	// ConfigErr is the error from loading configuration, if any.
	ConfigErr error
}

func (t Target) home() paths.HomeFunc {
	if t.Home == nil {
		return paths.ResolveHome
	}
	return t.Home
}

// rootPath returns the absolute root without requiring it to exist.
func (t Target) rootPath() (string, error) {
	return workspace.NewResolver(t.Layout, workspace.WithHome(t.home())).RootPath()
}

// DefaultChecks returns every check for target, in reporting order.
func DefaultChecks(target Target) []Check {
	return []Check{
		NewHomeCheck(target),
		NewConfigCheck(target),
		NewRootCheck(target),
		NewTemplateCheck(target),
		NewStrayCheck(target),
	}
}

// HomeCheck verifies the home directory can be determined.
type HomeCheck struct {
	target Target
}

var _ Check = (*HomeCheck)(nil)

// NewHomeCheck creates a new home directory check.
func NewHomeCheck(target Target) *HomeCheck {
	return &HomeCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *HomeCheck) Name() string { return "home" }

// Category returns the grouping for this check.
func (c *HomeCheck) Category() string { return "environment" }

// Run executes the check.
func (c *HomeCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	home, err := c.target.home()()
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Set the HOME environment variable"
		return result
	}

	result.Status = SeverityPass
	result.Message = "home directory is " + home
	result.Details = map[string]any{"home": home}
	return result
}

// ConfigCheck reports whether configuration loaded cleanly.
type ConfigCheck struct {
	target Target
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(target Target) *ConfigCheck {
	return &ConfigCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"file": c.target.ConfigFile},
	}

	if c.target.ConfigErr != nil {
		result.Status = SeverityError
		result.Message = c.target.ConfigErr.Error()
		result.FixHint = "Run: daily config edit"
		return result
	}

	if _, err := os.Stat(c.target.ConfigFile); err != nil {
		result.Status = SeverityInfo
		result.Message = "no config file; using defaults"
		result.FixHint = "Run: daily init"
		return result
	}

	result.Status = SeverityPass
	result.Message = "loaded " + c.target.ConfigFile
	return result
}

// RootCheck verifies the workspace root exists and is a directory.
type RootCheck struct {
	target Target
	mkdirFixer
}

var (
	_ Check = (*RootCheck)(nil)
	_ Fixer = (*RootCheck)(nil)
)

// NewRootCheck creates a new workspace root check.
func NewRootCheck(target Target) *RootCheck {
	return &RootCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *RootCheck) Name() string { return "root" }

// Category returns the grouping for this check.
func (c *RootCheck) Category() string { return "workspace" }

// Run executes the check.
func (c *RootCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.mkdirFixer.target = ""

	root, err := c.target.rootPath()
	if err != nil {
		result.Status = SeverityError
		result.Message = "cannot determine workspace root: " + err.Error()
		return result
	}
	result.Details = map[string]any{"path": root}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		c.mkdirFixer.target = root
		result.Status = SeverityError
		result.Message = "workspace root does not exist: " + root
		result.Fixable = true
		result.FixHint = "Run: daily init (or daily doctor --fix)"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot access workspace root: %v", err)
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = "workspace root is not a directory: " + root
		return result
	}

	if resolved, err := filepath.EvalSymlinks(root); err == nil && resolved != root {
		result.Details["resolved"] = resolved
	}

	result.Status = SeverityPass
	result.Message = "workspace root is " + root
	return result
}

// TemplateCheck verifies the template directory exists and has content.
type TemplateCheck struct {
	target Target
	mkdirFixer
}

var (
	_ Check = (*TemplateCheck)(nil)
	_ Fixer = (*TemplateCheck)(nil)
)

// NewTemplateCheck creates a new template check.
func NewTemplateCheck(target Target) *TemplateCheck {
	return &TemplateCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *TemplateCheck) Name() string { return "template" }

// Category returns the grouping for this check.
func (c *TemplateCheck) Category() string { return "workspace" }

// Run executes the check.
func (c *TemplateCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.mkdirFixer.target = ""

	root, err := c.target.rootPath()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: workspace root unknown"
		return result
	}
	template := filepath.Join(root, c.target.Layout.Template)
	result.Details = map[string]any{"path": template}

	info, err := os.Stat(template)
	switch {
	case os.IsNotExist(err):
		c.mkdirFixer.target = template
		result.Status = SeverityError
		result.Message = "template directory does not exist: " + template
		result.Fixable = true
		result.FixHint = "mkdir -p " + template
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot access template: %v", err)
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = "template is not a directory: " + template
		return result
	}

	files := 0
	walkErr := filepath.WalkDir(template, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files++
		}
		return nil
	})
	if walkErr != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("template is not fully readable: %v", walkErr)
		result.FixHint = "Fix permissions under " + template
		return result
	}
	result.Details["files"] = files

	if files == 0 {
		result.Status = SeverityWarning
		result.Message = "template is empty; new workspaces will be empty"
		result.FixHint = "Add files to " + template
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("template has %d file(s)", files)
	return result
}

// StrayCheck finds directories left behind by interrupted provisioning.
type StrayCheck struct {
	target Target
	removeFixer
}

var (
	_ Check = (*StrayCheck)(nil)
	_ Fixer = (*StrayCheck)(nil)
)

// NewStrayCheck creates a new leftover directory check.
func NewStrayCheck(target Target) *StrayCheck {
	return &StrayCheck{target: target}
}

// Name returns the unique identifier for this check.
func (c *StrayCheck) Name() string { return "strays" }

// Category returns the grouping for this check.
func (c *StrayCheck) Category() string { return "workspace" }

// Run executes the check.
func (c *StrayCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.removeFixer.targets = nil

	root, err := c.target.rootPath()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: workspace root unknown"
		return result
	}

	strays, err := workspace.Strays(root, c.target.Layout)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot scan workspace: %v", err)
		return result
	}

	if len(strays) == 0 {
		result.Status = SeverityPass
		result.Message = "no leftover copies of the template"
		return result
	}

	c.removeFixer.targets = strays
	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d leftover template copy(ies) from interrupted runs", len(strays))
	result.Details = map[string]any{"paths": strays}
	result.Fixable = true
	result.FixHint = "Remove them, or run: daily doctor --fix"
	return result
}
