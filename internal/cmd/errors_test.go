package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "validation error",
			err:      ErrValidation,
			expected: ExitValidationError,
		},
		{
			name:     "wrapped validation error",
			err:      WrapValidation(errors.New("bad config"), "vetting config"),
			expected: ExitValidationError,
		},
		{
			name:     "not found error",
			err:      ErrNotFound,
			expected: ExitNotFound,
		},
		{
			name:     "wrapped not found error",
			err:      WrapNotFound(errors.New("no such file"), "loading IOC feed"),
			expected: ExitNotFound,
		},
		{
			name:     "explicit exit error wins",
			err:      NewExitError(errors.New("boom"), ExitNotFound),
			expected: ExitNotFound,
		},
		{
			name:     "unknown error returns general error",
			err:      errors.New("unknown error"),
			expected: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewExitError(fmt.Errorf("running summary: %w", inner), ExitGeneralError)

	require.ErrorIs(t, err, inner)
	assert.Equal(t, "running summary: boom", err.Error())
}

func TestWrapKeepsMessage(t *testing.T) {
	err := WrapNotFound(errors.New("open iocs.json: no such file"), "loading IOC feed")

	assert.Contains(t, err.Error(), "loading IOC feed")
	assert.Contains(t, err.Error(), "open iocs.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "General Error", ExitCodeName(ExitGeneralError))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}