/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001
)

// 2xxx: Room Business Logic Errors
const (
	// ErrRoomNotFound indicates that the requested room does not exist or has no members.
	ErrRoomNotFound = 2101
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000
)
