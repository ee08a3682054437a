package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	Unauthorized = NewUnauthorizedError("authentication required")
	AccessDenied = NewForbiddenError("admin privileges required")
)

// Input errors. All are 400s carrying the offending field.
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

// Session errors.
var (
	ErrExpiredToken = errors.New("expired session token")
	ErrInvalidToken = errors.New("invalid session token")
)

func invalid(err error, field, details string, cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, err, field, details, cause)
}

// NewBadRequestErrorWithField reports a 400 with a free-form message.
func NewBadRequestErrorWithField(message, field, details string) *ApiErr {
	return invalid(errors.New(message), field, details, nil)
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return invalid(ErrMalformedPayload, "payload", fmt.Sprintf("Malformed %s payload", payloadType), cause)
}

func NewMissingRequiredFieldError(field string) *ApiErr {
	return invalid(ErrMissingRequiredField, field, "Missing required field: "+field, nil)
}

func NewInvalidFieldError(field, reason string) *ApiErr {
	return invalid(ErrInvalidField, field, fmt.Sprintf("Invalid field %s: %s", field, reason), nil)
}

func NewUnsupportedMediaTypeError(field, name string, allowed []string) *ApiErr {
	return invalid(ErrUnsupportedMediaType, field,
		fmt.Sprintf("File type of %q is not allowed. Allowed types: %v", name, allowed), nil)
}

func NewInvalidJSONError(cause error) *ApiErr {
	return invalid(ErrInvalidJSON, "json", "Invalid JSON format", cause)
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return newApiErr(http.StatusRequestEntityTooLarge, ErrMaxBodySizeExceeded, "body_size",
		fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize), nil)
}

func NewExpiredTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrExpiredToken, "authorization", "Session has expired", nil)
}

func NewInvalidTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrInvalidToken, "authorization", "Invalid session token", nil)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
