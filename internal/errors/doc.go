// Package errors provides error handling conventions for the daily CLI.
//
// It re-exports the github.com/cockroachdb/errors helpers used throughout
// the module, defines the sentinel errors that name every failure the tool
// can report, and provides [ExitError] for mapping failures to process exit
// codes.
//
// # Sentinel Errors
//
// Callers check for specific conditions using [Is]:
//
//	if errors.Is(err, errors.ErrTemplateMissing) {
//	    // the template directory has not been created yet
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Invalid arguments or configuration
//   - ExitSystem (2): Filesystem or other system failure
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion that main prints as a hint:
//
//	err := errors.NewUserError(errors.ErrMissingSubcommand, "Run: daily help")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
