package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")

	// ErrSkipped reports that a submit carried blank input and nothing was done.
	// It is not a failure.
	ErrSkipped = errors.New("skipped: blank input")

	// ErrStale reports that a result settled after its view was reset or resubmitted.
	ErrStale = errors.New("stale result")

	ErrGeneration            = errors.New("generation failed")
	ErrDefinitionUnavailable = errors.New("definition unavailable")
	ErrAudioUnavailable      = errors.New("audio unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// GenerationError is returned by generation providers when a remote call fails.
// It matches ErrGeneration and exposes the provider cause.
type GenerationError struct {
	Op    string // "text" or "speech"
	Model string
	Cause error
}

// NewGenerationError wraps cause as a GenerationError.
func NewGenerationError(op, model string, cause error) *GenerationError {
	return &GenerationError{Op: op, Model: model, Cause: cause}
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generate %s (%s): failed", e.Op, e.Model)
	}
	return fmt.Sprintf("generate %s (%s): %v", e.Op, e.Model, e.Cause)
}

func (e *GenerationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrGeneration}
	}
	return []error{ErrGeneration, e.Cause}
}
