package mailmerge

import (
	"errors"
	"fmt"
)

// Predefined sentinel errors for common cases.
var (
	// ErrMalformedTemplate indicates a template resource with fewer than
	// the two lines (subject, separator) a template requires.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrUnknownProvider indicates an unsupported provider name in the
	// configuration.
	ErrUnknownProvider = errors.New("unknown provider")
)

// TemplateError represents an error in template processing.
type TemplateError struct {
	// Path is the template resource the error refers to, if known.
	Path string

	// Operation is the operation that failed (e.g., "load", "parse").
	Operation string

	// Message is the error message.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template error in %s during %s: %s", e.Path, e.Operation, e.Message)
	}
	return fmt.Sprintf("template error during %s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NewTemplateError creates a new template error.
func NewTemplateError(path, operation, message string, cause error) *TemplateError {
	return &TemplateError{
		Path:      path,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}
