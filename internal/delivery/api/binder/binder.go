// Package binder decodes JSON request bodies strictly: unknown properties and
// wrongly typed values are reported as field validation errors.
package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	domainerrors "authapp/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const unknownFieldPrefix = "json: unknown field "

// StrictJSONBinder implements echo.Binder for JSON bodies.
type StrictJSONBinder struct{}

// New creates the binder.
func New() *StrictJSONBinder {
	return &StrictJSONBinder{}
}

// Bind decodes the request body into i. An empty body leaves i untouched so
// that validation can report the missing fields.
func (b *StrictJSONBinder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}

	decoder := json.NewDecoder(req.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(i)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return translate(err)
	}

	// The body must hold exactly one JSON value.
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return domainerrors.ErrMalformedBody.WrapMessage("unexpected data after JSON value")
	}

	return nil
}

func translate(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", label(typeErr.Field), typeErr.Type.Kind()),
		})
	}

	if field, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
		field = strings.Trim(field, `"`)

		return domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   field,
			Message: "property " + field + " should not exist",
		})
	}

	return domainerrors.ErrMalformedBody.WrapMessage(err.Error())
}

func label(field string) string {
	runes := []rune(field)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
