package sheet

// Move returns a copy of s with the element at from removed and reinserted at to.
// All other elements keep their relative order. Both indices must lie in [0, len(s)).
func Move[T any](s []T, from, to int) ([]T, error) {
	n := len(s)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, &IndexError{Op: "move", From: from, To: to, Len: n}
	}

	out := make([]T, 0, n)
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)

	moved := s[from]
	out = append(out, moved) // grow by one, then shift the tail right
	copy(out[to+1:], out[to:n-1])
	out[to] = moved
	return out, nil
}

// withOp stamps op onto an IndexError returned by Move.
func withOp(err error, op string) error {
	if ie, ok := err.(*IndexError); ok {
		ie.Op = op
	}
	return err
}
