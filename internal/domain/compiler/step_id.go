package compiler

import (
	"errors"
	"regexp"
	"strings"
)

// StepID uniquely identifies a step within a run.
// Format: provider:action[:resource] (e.g. "pipx:tool:ruff").
type StepID struct {
	value string
}

// Errors for StepID validation.
var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID format invalid: must be colon separated segments of letters, digits and ._@+/-")
)

var stepIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.@+/-]*(?::[a-zA-Z0-9][a-zA-Z0-9_.@+/-]*)*$`)

// NewStepID creates a new StepID from a string.
func NewStepID(value string) (StepID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StepID{}, ErrEmptyStepID
	}
	if !stepIDPattern.MatchString(trimmed) {
		return StepID{}, ErrInvalidStepID
	}
	return StepID{value: trimmed}, nil
}

// MustNewStepID creates a new StepID, panicking on invalid input.
// Use this for IDs built from constants.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID: " + value + ": " + err.Error())
	}
	return id
}

// String returns the string representation.
func (id StepID) String() string {
	return id.value
}

// Provider extracts the provider name (first segment).
func (id StepID) Provider() string {
	provider, _, _ := strings.Cut(id.value, ":")
	return provider
}

// IsZero returns true if this is a zero-value StepID.
func (id StepID) IsZero() bool {
	return id.value == ""
}
