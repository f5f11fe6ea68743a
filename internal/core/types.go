package core

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"
)

// Provider defines the interface for email delivery providers.
// A provider delivers exactly one message per Send call; connection
// lifetime never outlives a single call.
type Provider interface {
	// Send delivers a single message using the provider's API or wire
	// protocol. The returned error wraps a *ProviderError for delivery
	// failures.
	Send(ctx context.Context, msg *Message) (*SendResult, error)

	// ValidateConfig validates the provider configuration.
	// Returns an error if the configuration is invalid or incomplete.
	ValidateConfig() error

	// Name returns the provider's name for identification and reporting.
	Name() string
}

// ProviderSettings represents configuration settings for email providers.
type ProviderSettings map[string]string

// Get retrieves a configuration value by key.
func (ps ProviderSettings) Get(key string) string {
	return ps[key]
}

// Set sets a configuration value.
func (ps ProviderSettings) Set(key, value string) {
	ps[key] = value
}

// Address represents an email address with optional display name.
type Address struct {
	Name  string `json:"name"`  // Display name (optional)
	Email string `json:"email"` // Email address (required)
}

// String returns the formatted email address.
// If Name is provided, returns "Name <email@domain.com>",
// otherwise just "email@domain.com".
func (a Address) String() string {
	if a.Name != "" {
		return mime.QEncoding.Encode("UTF-8", a.Name) + " <" + a.Email + ">"
	}
	return a.Email
}

// Message represents a single outgoing email: one sender, one recipient,
// one content part. Reply-To is always set equal to the sender.
type Message struct {
	From     Address           `json:"from"`      // Sender address
	To       Address           `json:"to"`        // Recipient address
	Subject  string            `json:"subject"`   // Rendered subject
	TextBody string            `json:"text_body"` // Plain text body
	HTMLBody string            `json:"html_body"` // HTML body (set instead of TextBody)
	Headers  map[string]string `json:"headers"`   // Custom headers
}

// Validate checks that the message carries the fields every provider
// needs. Address syntax is deliberately not checked; presence is the
// only requirement.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.From.Email) == "" {
		return &ValidationError{Field: "from", Message: "sender address is required"}
	}
	if strings.TrimSpace(m.To.Email) == "" {
		return &ValidationError{Field: "to", Message: "recipient address is required"}
	}
	return nil
}

// IsHTML reports whether the message body should be delivered as HTML.
func (m *Message) IsHTML() bool {
	return m.HTMLBody != ""
}

// Body returns the message body regardless of content type.
func (m *Message) Body() string {
	if m.HTMLBody != "" {
		return m.HTMLBody
	}
	return m.TextBody
}

// SendResult contains the result of delivering a single message.
type SendResult struct {
	// MessageID is the unique identifier assigned by the provider.
	MessageID string

	// Provider is the name of the provider that delivered the message.
	Provider string

	// Timestamp when the message was accepted by the provider.
	Timestamp time.Time
}

// ValidationError represents a validation error with specific field information.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ProviderError represents an error from an email provider.
type ProviderError struct {
	// Provider is the name of the provider that generated the error.
	Provider string

	// Code is the provider-specific error code.
	Code string

	// Message is the error message from the provider.
	Message string

	// Cause is the underlying error that caused this provider error.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s error [%s]: %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Provider == pe.Provider && e.Code == pe.Code
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// NewProviderErrorWithCause creates a new provider error wrapping an
// underlying cause.
func NewProviderErrorWithCause(provider, code, message string, cause error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// IsSendFailure reports whether err originated in a delivery provider.
func IsSendFailure(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	return errors.As(err, &pe)
}
