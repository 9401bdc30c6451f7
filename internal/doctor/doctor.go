package doctor

import "time"

// Check inspects one aspect of the environment.
type Check interface {
	Name() string
	// Category groups checks in output, e.g. "workspace".
	Category() string
	Run() *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck appends c to the run order.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes every check and tallies the results.
func (r *Runner) Run() *DoctorReport {
	report := &DoctorReport{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		res := c.Run()
		report.Results = append(report.Results, res)
		report.Summary.add(res.Status)
	}
	return report
}

// Fix repairs what the last Run found. Checks that do not implement Fixer,
// or have nothing to fix, are skipped.
func (r *Runner) Fix() []FixResult {
	var fixed []FixResult
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			fixed = append(fixed, f.Fix()...)
		}
	}
	return fixed
}

// DoctorReport is the outcome of a Run.
type DoctorReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
