package errs

import (
	"errors"
	"net/http"
)

// Identity & engagement domain errors
var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrEmailNotFound         = errors.New("email not found")
	ErrIncorrectPassword     = errors.New("current password is incorrect")
	ErrEmptyComment          = errors.New("comment cannot be empty")
	ErrPasswordConfirmation  = errors.New("passwords must match")
)

func NewDuplicateEmailError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        classified(ErrDuplicateEmail, ErrConflict),
		Field:      "email",
	}
}

func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        classified(ErrInvalidCredentials, ErrUnauthorized),
	}
}

func NewInvalidOrExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidOrExpiredToken,
		Field:      "token",
	}
}

func NewEmailNotFoundError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        classified(ErrEmailNotFound, ErrNotFound),
		Field:      "email",
	}
}

func NewIncorrectPasswordError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrIncorrectPassword,
		Field:      "current_password",
	}
}

func NewEmptyCommentError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrEmptyComment,
		Field:      "content",
	}
}

func NewPasswordConfirmationError(field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrPasswordConfirmation,
		Field:      field,
	}
}

func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}

func IsInvalidOrExpiredToken(err error) bool {
	return errors.Is(err, ErrInvalidOrExpiredToken)
}
