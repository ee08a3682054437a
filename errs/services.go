package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrExternalService    = errors.New("external service failure")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
)

// NewExternalServiceError reports a failed call to a collaborator such as the
// email API, the SMS gateway, or object storage.
func NewExternalServiceError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrExternalService,
		Details:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured", service),
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is required", key),
		Field:      key,
	}
}

func IsExternalServiceError(err error) bool {
	return errors.Is(err, ErrExternalService)
}

func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
