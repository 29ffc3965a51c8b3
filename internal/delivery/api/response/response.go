package response

import (
	"net/http"

	domainerrors "authapp/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	StatusCode int                       `json:"statusCode"`
	Message    string                    `json:"message"`
	Errors     []domainerrors.FieldError `json:"errors,omitempty"` // Only for 400 validation failures
}

// Success writes data as the JSON body
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, message string, fields []domainerrors.FieldError) error {
	if statusCode != http.StatusBadRequest {
		fields = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Errors:     fields,
	})
}

// ValidationFailed returns a 400 error listing every rejected field
func ValidationFailed(c echo.Context, vErr *domainerrors.ValidationError) error {
	return Error(c, http.StatusBadRequest, vErr.Message(), vErr.Fields)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message(), nil)
}
