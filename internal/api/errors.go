package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the one failure type every call site sees: either a server-returned
// status with the server's message, or Status 0 for a transport failure where
// no response arrived at all.
type Error struct {
	Status  int
	Message string
	Errors  []FieldError
}

// FieldError carries per-field validation detail from the error envelope.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the backend. Callers
// normally never need this: the client has already cleared the session and
// fired its unauthorized hook by the time this error surfaces.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// IsNetwork reports whether err represents a transport failure (no HTTP
// response at all), as opposed to a server-returned error.
func IsNetwork(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == 0
}
