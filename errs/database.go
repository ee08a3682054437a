package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrDatabaseQuery        = errors.New("database query failed")
	ErrDatabaseConnection   = errors.New("database connection failed")
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
	ErrInvalidData          = errors.New("invalid data")
)

// NewNotFound reads as "<entity> not found".
func NewNotFound(entity string) *ApiErr {
	return newApiErr(http.StatusNotFound, fmt.Errorf("%s %w", entity, ErrNotFound), "", "", nil)
}

// NewDatabaseError keeps cause for the logs; clients see a generic failure.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrDatabaseQuery, "",
		fmt.Sprintf("Failed to %s %s", operation, entity), cause)
}

func NewDatabaseConnectionError(cause error) *ApiErr {
	return newApiErr(http.StatusServiceUnavailable, ErrDatabaseConnection, "", "Unable to connect to database", cause)
}

// NewUniqueConstraintViolationError is a 409 on field, e.g. a taken email or category name.
func NewUniqueConstraintViolationError(entity, field string, cause error) *ApiErr {
	return newApiErr(http.StatusConflict, fmt.Errorf("%s %w", entity, ErrAlreadyExists), field,
		fmt.Sprintf("Unique constraint violation on %s.%s", entity, field), cause)
}

// NewForeignKeyConstraintError is a 400: the request referenced a row that does not exist.
func NewForeignKeyConstraintError(entity, field string, cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrForeignKeyConstraint, field,
		"invalid reference in "+entity, cause)
}

// NewInvalidDataError is a 400 for a value the database refused, such as text
// in an encoding it cannot store.
func NewInvalidDataError(entity, field string, cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidData, field, "value rejected for "+entity, cause)
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
