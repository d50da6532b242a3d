package api

import (
	"fmt"

	"itemvault/internal/common"
)

// AuthError is a failed login or signup. Message is the server-supplied
// text and is intended to be shown to the user verbatim.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Unwrap lets callers match with errors.Is(err, common.ErrUnauthorized).
func (e *AuthError) Unwrap() error { return common.ErrUnauthorized }

// RequestError is a non-2xx response from an item operation. It is not
// normally shown to the user; the controller decides whether to surface it.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
