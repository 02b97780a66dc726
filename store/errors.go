package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned by Load when a newer Load started before this one finished.
	ErrSuperseded = errors.New("sheetstore: load superseded by a newer load")

	// ErrNoFetcher is returned by Load when the store was built without a Fetcher.
	ErrNoFetcher = errors.New("sheetstore: no fetcher configured")

	// ErrNoSource is returned by Load when neither the call nor the config names a URL.
	ErrNoSource = errors.New("sheetstore: no source url")
)

// PersistenceError wraps a failed snapshot read or write. It is logged, never returned.
type PersistenceError struct {
	// Op is "save" or "load".
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("sheetstore: snapshot %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
