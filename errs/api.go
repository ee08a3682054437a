package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Class sentinels. Specific errors match one of these through errors.Is.
var (
	ErrForbidden    = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("resource conflict")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
)

// ApiErr is an error that knows how it should be reported over HTTP.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string // extra context, shown to the client
	Field      string // offending input field, if any
	Cause      error  // logged, never shown
}

func (e *ApiErr) Error() string {
	if e.Details == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.Details
}

// Message returns the error text without details.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError follows Cause and joins every message with " -> ".
func (e *ApiErr) GetFullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	var next *ApiErr
	if errors.As(e.Cause, &next) {
		return e.Error() + " -> " + next.GetFullError()
	}
	return e.Error() + " -> " + e.Cause.Error()
}

// Unwrap exposes the sentinel so errors.Is(apiErr, ErrXxx) works.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// classifiedErr reads as its own message but also matches a broader class
// sentinel through errors.Is.
type classifiedErr struct {
	err   error
	class error
}

func classified(err, class error) error {
	return classifiedErr{err: err, class: class}
}

func (c classifiedErr) Error() string   { return c.err.Error() }
func (c classifiedErr) Unwrap() []error { return []error{c.err, c.class} }

func newApiErr(status int, err error, field, details string, cause error) *ApiErr {
	return &ApiErr{StatusCode: status, err: err, Field: field, Details: details, Cause: cause}
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an *ApiErr.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

func NewNotFoundError(message string) *ApiErr {
	return newApiErr(http.StatusNotFound, classified(errors.New(message), ErrNotFound), "", "", nil)
}

func NewForbiddenError(message string) *ApiErr {
	return newApiErr(http.StatusForbidden, classified(errors.New(message), ErrForbidden), "", "", nil)
}

func NewUnauthorizedError(message string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, classified(errors.New(message), ErrUnauthorized), "", "", nil)
}

// NewInternalErrorWithCause hides cause from the client behind message.
func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return newApiErr(http.StatusInternalServerError, errors.New(message), "", "", cause)
}

func NewCORSError(origin string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrCORSBlocked, "",
		fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin), nil)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyExists)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}
