package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for workspace resolution and provisioning.
var (
	// ErrHomeNotFound indicates the user's home directory could not be determined.
	ErrHomeNotFound = crdb.New("home directory not found")

	// ErrCanonicalization indicates the workspace root could not be resolved
	// to a real path, usually because it does not exist yet.
	ErrCanonicalization = crdb.New("canonicalization failed")

	// ErrTemplateMissing indicates the template directory does not exist.
	ErrTemplateMissing = crdb.New("workspace template directory does not exist")

	// ErrDirectoryCreation indicates a directory could not be created.
	ErrDirectoryCreation = crdb.New("failed to create directory")

	// ErrCopyFailed indicates the template could not be copied.
	ErrCopyFailed = crdb.New("failed to copy template directory")

	// ErrRenameFailed indicates the copied template could not be moved into place.
	ErrRenameFailed = crdb.New("failed to rename copied directory")
)

// Sentinel errors for command dispatch and configuration.
var (
	// ErrUnknownSubcommand indicates the first argument is not a known command.
	ErrUnknownSubcommand = crdb.New("unknown subcommand")

	// ErrMissingSubcommand indicates no command was given.
	ErrMissingSubcommand = crdb.New("invalid number of arguments")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
	Is    = crdb.Is
	As    = crdb.As

	CombineErrors = crdb.CombineErrors
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and unwraps to Err.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: daily doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Classify converts a workspace failure into an ExitError carrying the exit
// code and suggestion that fit the sentinel found in its chain. Errors that
// are already ExitErrors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return err
	}

	switch {
	case Is(err, ErrHomeNotFound):
		return NewUserError(err, "Set the HOME environment variable")
	case Is(err, ErrCanonicalization):
		return NewUserError(err, "Run: daily init")
	case Is(err, ErrTemplateMissing):
		return NewUserError(err, "Create the template directory or run: daily init")
	case Is(err, ErrInvalidConfig):
		return NewConfigError(err)
	case Is(err, ErrUnknownSubcommand), Is(err, ErrMissingSubcommand):
		return NewUserError(err, "Run: daily help")
	case Is(err, ErrDirectoryCreation), Is(err, ErrCopyFailed), Is(err, ErrRenameFailed):
		return NewSystemError(err, "Check permissions on the workspace directory")
	default:
		return NewSystemError(err, "")
	}
}

// Tag wraps cause with a formatted message and marks the result so that
// Is(err, sentinel) reports true. The message of sentinel is not repeated.
func Tag(cause, sentinel error, format string, args ...any) error {
	if cause == nil {
		return Mark(Newf(format, args...), sentinel)
	}
	return Mark(Wrapf(cause, format, args...), sentinel)
}
