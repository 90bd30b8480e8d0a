package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers unknown profiles and other missing resources.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument covers malformed inputs: a date range whose end
// precedes its start, an upload that is not CSV, a bad limit.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports a rejected profile or goal payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
