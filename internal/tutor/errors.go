package tutor

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a backend answers successfully without text.
var ErrEmptyResponse = errors.New("no text in model response")

// StatusError reports a non-success HTTP status from a backend.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }
