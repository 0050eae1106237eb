package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns leave_type_id into "Leave Type Id".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts the first binding failure into a field-specific AppError.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "datetime":
			return invalidInput("%s must be a date in YYYY-MM-DD format", field)
		case "max":
			if e.Kind() == reflect.String {
				return invalidInput("%s must be at most %s characters", field, e.Param())
			}
			return invalidInput("%s must be at most %s", field, e.Param())
		case "min":
			if e.Kind() == reflect.String {
				return invalidInput("%s must be at least %s characters", field, e.Param())
			}
			return invalidInput("%s must be at least %s", field, e.Param())
		case "gt":
			return invalidInput("%s must be greater than %s", field, e.Param())
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}

func invalidInput(format string, args ...any) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...), http.StatusBadRequest)
}
