package errors

import (
	"errors"
	"fmt"
	"time"
)

// PublishError is the unified error type surfaced by adapters, the review
// cycle, and the session. It carries a code for classification, the
// platform it came from, and the field name for validation failures.
type PublishError struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *PublishError) Unwrap() error {
	return e.Cause
}

// Is matches against another PublishError by code.
func (e *PublishError) Is(target error) bool {
	if pe, ok := target.(*PublishError); ok {
		return e.Code == pe.Code
	}
	return false
}

// Reason returns the human-readable reason reported to the requester.
// It never contains a stack trace.
func (e *PublishError) Reason() string {
	info := GetErrorInfo(e.Code)
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", info.Description, e.Message)
	}
	return info.Description
}

// WithField records the offending field name and returns the error.
func (e *PublishError) WithField(field string) *PublishError {
	e.Field = field
	return e
}

// WithPlatform records the originating platform and returns the error.
func (e *PublishError) WithPlatform(platform string) *PublishError {
	e.Platform = platform
	return e
}

// WithDetails adds details to the error.
func (e *PublishError) WithDetails(details string) *PublishError {
	e.Details = details
	return e
}

// WithCause sets the underlying cause error.
func (e *PublishError) WithCause(cause error) *PublishError {
	e.Cause = cause
	return e
}

// New creates a new PublishError.
func New(code Code, message string) *PublishError {
	return &PublishError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Newf creates a new PublishError with a formatted message.
func Newf(code Code, format string, args ...any) *PublishError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a PublishError.
func Wrap(cause error, code Code, message string) *PublishError {
	return &PublishError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// Validation creates a field validation error.
func Validation(field, reason string) *PublishError {
	return New(ErrValidation, reason).WithField(field)
}

// IllegalTransition creates a review-cycle contract error.
func IllegalTransition(from, op string) *PublishError {
	return Newf(ErrIllegalTransition, "cannot %s from state %s", op, from)
}

// AsPublishError extracts a *PublishError from err, wrapping foreign
// errors as ErrUnknown so callers always see a coded error.
func AsPublishError(err error) *PublishError {
	if err == nil {
		return nil
	}
	var pe *PublishError
	if errors.As(err, &pe) {
		return pe
	}
	return Wrap(err, ErrUnknown, err.Error())
}

// CodeOf returns the code of err, or ErrUnknown for foreign errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var pe *PublishError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrUnknown
}
