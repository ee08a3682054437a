package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-backend/errs"
)

// textRule is the message for strings Postgres would refuse to store.
const textRule = "must be valid UTF-8 text without NUL bytes"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name so clients can map errors to inputs.
	v.RegisterTagNameFunc(wireName)
	// maxbytes=N bounds the encoded length; max counts runes. bcrypt only
	// accepts passwords up to 72 bytes.
	if err := v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	}); err != nil {
		panic(err)
	}
	return v
}

func wireName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// ValidText reports whether s is valid UTF-8 without NUL bytes.
func ValidText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// checkText rejects the first string or *string field of struct s that is not
// ValidText.
func checkText(s any) error {
	v := reflect.Indirect(reflect.ValueOf(s))
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.Pointer && f.Type().Elem().Kind() == reflect.String {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		if f.Kind() == reflect.String && !ValidText(f.String()) {
			return errs.NewInvalidFieldError(wireName(sf), textRule)
		}
	}
	return nil
}

// validateInput checks s for unstorable text, then against its validate tags,
// and reports the first failing field as a field-level error.
func validateInput(s any) error {
	if err := checkText(s); err != nil {
		return err
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewMalformedPayloadError("request", err)
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(field)
	case "min":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "maxbytes":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at most %s bytes", fe.Param()))
	case "email":
		return errs.NewInvalidFieldError(field, "must be a valid email address")
	case "url", "http_url":
		return errs.NewInvalidFieldError(field, "must be a valid URL")
	case "datetime":
		return errs.NewInvalidFieldError(field, "must be a date formatted as YYYY-MM-DD")
	case "eqfield":
		return errs.NewPasswordConfirmationError(field)
	default:
		return errs.NewInvalidFieldError(field, fe.Tag())
	}
}

// trimmed returns a trimmed copy of s, or nil when s is nil or blank.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
