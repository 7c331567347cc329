package api

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by New when the dev id or auth key is absent.
var ErrMissingCredentials = errors.New("dev id and auth key are required")

// APIError is a non-success response from the Hi-Rez API.
type APIError struct {
	Method     string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api method %s failed with status %d", e.Method, e.StatusCode)
}
