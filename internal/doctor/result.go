// Package doctor diagnoses the daily workspace tree and repairs what it can.
package doctor

import "github.com/thoreinstein/daily/internal/errors"

// Severity orders check outcomes from healthy to broken.
type Severity int

const (
	SeverityPass Severity = iota
	// SeverityInfo is worth reporting but needs no action.
	SeverityInfo
	// SeverityWarning leaves daily usable; something should still be cleaned up.
	SeverityWarning
	// SeverityError means date, year or temp commands will fail.
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	for i, name := range severityNames {
		if name == string(b) {
			*s = Severity(i)
			return nil
		}
	}
	return errors.Newf("unknown severity %q", b)
}

// CheckResult is what a single check found.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details carries check-specific context such as paths.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when doctor --fix can repair the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
