package dto

import "net/http"

// Error codes exposed by the HTTP layer. Domain error codes are used as-is;
// the ones below cover failures that originate in this layer.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"VALIDATION_ERROR": http.StatusBadRequest,

	"UNAUTHORIZED":  http.StatusUnauthorized,
	"TOKEN_EXPIRED": http.StatusUnauthorized,

	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// Another session won the correlative, or the aggregate moved on
	"SEQUENCE_CONFLICT": http.StatusConflict,
	"VERSION_CONFLICT":  http.StatusConflict,

	// A prior workflow step is missing, or the state machine forbids the move
	"PRECONDITION_FAILED": http.StatusPreconditionFailed,
	"INVALID_STATE":       http.StatusConflict,

	// The outcome is unknown and the client may retry
	"TRANSIENT_IO": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
