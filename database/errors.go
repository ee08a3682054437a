package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rpupo63/portfolio-backend/errs"
	"gorm.io/gorm"
)

// SQLSTATE codes the repositories react to.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// Class 22 covers bad client values: encoding, NUL bytes, out of range.
	dataExceptionClass = "22"
)

// translateError maps driver and gorm errors onto the errs taxonomy so callers
// never need to know about gorm or pgx.
func translateError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errs.NewUniqueConstraintViolationError(entity, constraintField(pgErr), err)
		case foreignKeyViolation:
			return errs.NewForeignKeyConstraintError(entity, constraintField(pgErr), err)
		}
		if strings.HasPrefix(pgErr.Code, dataExceptionClass) {
			return errs.NewInvalidDataError(entity, pgErr.ColumnName, err)
		}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.NewDatabaseConnectionError(err)
	}

	return errs.NewDatabaseError(operation, entity, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// constraintField derives a field name from the violated constraint, turning
// idx_users_email into email and fk_comments_project into project.
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}

	name := pgErr.ConstraintName
	for _, prefix := range []string{"idx_", "fk_"} {
		name = strings.TrimPrefix(name, prefix)
	}
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	return name
}
