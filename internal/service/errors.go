package service

import "fmt"

// QueryError reports a lookup that failed after the player's profile was
// already retrieved. Partial data is discarded rather than shown.
type QueryError struct {
	Stage string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Stage, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
