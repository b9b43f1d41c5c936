package cmd

import (
	"errors"
	"fmt"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an input file was not found.
	ErrNotFound = errors.New("not found")
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// WrapValidation wraps an error with ErrValidation.
func WrapValidation(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrValidation, err)
}

// WrapNotFound wraps an error with ErrNotFound.
func WrapNotFound(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
}
