/*
Package errs provides custom error types and application-level error code constants.

The CustomError struct implements the standard Go error interface and carries
a business code, a user-friendly message, and an HTTP status code for unified
error reporting on the HTTP surface.
*/
package errs

import (
	"fmt"
	"net/http"

	"chathub/internal/pkg/logx"
)

// CustomError is the error structure used on the HTTP surface.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError constructs a *CustomError from a predefined error code.
// An unknown code degrades to ErrUnknown rather than failing.
func NewError(code int) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with a code missing from errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	return &customErr
}
