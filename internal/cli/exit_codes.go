package cli

import (
	"fmt"

	errs "gitlab.com/lanterman/loglady/internal/errors"
)

// Exit codes for the loglady CLI
// These codes support scripting and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntime indicates a runtime or API failure
	ExitRuntime = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfiguration indicates missing or invalid configuration
	ExitConfiguration = 3

	// ExitNotFound indicates the milestone or its issues were not found
	ExitNotFound = 4
)

// ExitError signals a specific process exit code while carrying the cause.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError pairs an exit code with the error that caused it.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCode extracts the process exit code from an error. nil means success;
// errors without an explicit code exit 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitRuntime
}

// categoryExitCode maps a structured error category to its exit code.
func categoryExitCode(category errs.ErrorCategory) int {
	switch category {
	case errs.Argument:
		return ExitInvalidArguments
	case errs.Configuration:
		return ExitConfiguration
	case errs.NotFound:
		return ExitNotFound
	default:
		return ExitRuntime
	}
}
