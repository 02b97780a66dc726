package ingest

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every [*TransportError] via errors.Is.
var ErrTransport = errors.New("ingest: transport failure")

// TransportError reports a failed fetch: a network error, a timeout, an open
// circuit, or a non-2xx response.
type TransportError struct {
	URL string

	// StatusCode is the HTTP status of the response, or 0 if none was received.
	StatusCode int

	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("ingest: fetch %s: unexpected status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("ingest: fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("ingest: fetch %s failed", e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
