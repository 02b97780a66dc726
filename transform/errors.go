package transform

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload is matched by every [*ValidationError] via errors.Is.
var ErrInvalidPayload = errors.New("transform: invalid payload")

// ValidationError reports a payload that is missing a required field.
// It is returned before any part of the tree is built.
type ValidationError struct {
	// Field is the dotted path of the offending field (e.g. "sheet.config.topicOrder").
	Field string

	// Reason is a short description of what is wrong with the field.
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("transform: invalid payload: %s %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidPayload.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPayload
}
