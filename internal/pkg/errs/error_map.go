/*
Package errs provides custom error types and application-level error code constants.

This file maps error codes to their CustomError templates, standardizing
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status defaults to HTTP 200 with a non-zero business code.
var errorMap = map[int]CustomError{
	ErrInvalidParams: {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrRoomNotFound:  {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrUnknown:       {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
