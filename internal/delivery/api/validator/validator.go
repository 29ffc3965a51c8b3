// Package validator adapts go-playground/validator to echo and renders
// failures as field-level domain validation errors.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	domainerrors "authapp/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TagPasswordStrength requires at least one letter, one digit and one other character.
const TagPasswordStrength = "password_strength"

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	if err := v.RegisterValidation(TagPasswordStrength, validatePasswordStrength); err != nil {
		panic(err)
	}

	return &CustomValidator{validate: v}
}

// Validate runs struct validation. Failures are returned as *domainerrors.ValidationError,
// one entry per field in declaration order.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	fields := make([]domainerrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

func messageFor(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
	case TagPasswordStrength:
		return label + " must contain at least one letter, one number, and one special character"
	default:
		return label + " is invalid"
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return "Value"
	}
	runes := []rune(field)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit, hasOther bool
	for _, r := range fl.Field().String() {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	return hasLetter && hasDigit && hasOther
}
