package sheet

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every [*IndexError] via errors.Is.
var ErrIndexOutOfRange = errors.New("sheet: index out of range")

// IndexError is returned by reorder operations given an index outside the sequence.
type IndexError struct {
	// Op names the operation that failed (e.g. "reorder topics").
	Op string

	// From and To are the indices that were requested.
	From, To int

	// Len is the length of the sequence at the time of the call.
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("sheet: %s: index out of range (from=%d, to=%d, len=%d)", e.Op, e.From, e.To, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
