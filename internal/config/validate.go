package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/daily/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not understood.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrEmptyValue indicates a required field is empty.
	ErrEmptyValue = errors.New("value must not be empty")

	// ErrInvalidName indicates a value that must be a single path element is not.
	ErrInvalidName = errors.New("must be a single directory name")

	// ErrInvalidPattern indicates an exclude entry is not a valid glob.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// FieldError represents a validation error for a specific configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if strings.TrimSpace(cfg.Root) == "" || strings.ContainsRune(cfg.Root, '\x00') {
		errs = append(errs, &FieldError{Field: "root", Value: cfg.Root, Err: ErrEmptyValue})
	}

	if err := validateName(cfg.Template); err != nil {
		errs = append(errs, &FieldError{Field: "template", Value: cfg.Template, Err: err})
	}

	if err := validateName(cfg.YearFormat); err != nil {
		errs = append(errs, &FieldError{Field: "year_format", Value: cfg.YearFormat, Err: err})
	}

	if err := validateName(cfg.DateFormat); err != nil {
		errs = append(errs, &FieldError{Field: "date_format", Value: cfg.DateFormat, Err: err})
	}

	for _, pattern := range cfg.Exclude {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &FieldError{Field: "exclude", Value: pattern, Err: ErrInvalidPattern})
		}
	}

	return errs
}

// validateName checks that s can be used as one path element.
func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyValue
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`+"\x00") || s != filepath.Base(s) {
		return ErrInvalidName
	}
	return nil
}
