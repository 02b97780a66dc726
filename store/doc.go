// Package store owns the canonical sheet tree and serializes every mutation
// into a full-tree replacement followed by one snapshot write.
//
// A [Store] is the only writer of its tree. Each operation takes the store
// lock, computes the next tree with the pure functions of package sheet,
// commits it, and hands the whole snapshot to the [Persister] before the lock
// is released. Read-then-write operations such as
// [Store.ToggleQuestionSolved] run as one unit under that lock.
//
// # Ports
//
// The store talks to two external collaborators:
//
//	type Persister interface {
//	    Save(ctx context.Context, tree sheet.Tree) error
//	    Load(ctx context.Context) (sheet.Tree, bool, error)
//	}
//
//	type Fetcher interface {
//	    Fetch(ctx context.Context, url string) ([]byte, error)
//	}
//
// Persistence is best-effort. A failed Save is logged as a [*PersistenceError]
// and the in-memory tree stays committed; a failed Load at startup is logged
// and treated as "no snapshot".
//
// # Loading
//
// [Store.Load] fetches the sheet payload without holding the lock. Every call
// takes a generation number; when a newer Load has started by the time the
// payload arrives, the older result is discarded and [ErrSuperseded] is
// returned. Cancelling the context aborts the fetch.
//
// # Errors
//
//   - [transform.ValidationError] - the payload is malformed; the tree is unchanged
//   - [ingest.TransportError] - the fetch failed; the tree is unchanged
//   - [sheet.IndexError] - a reorder index is out of range
//   - [ErrSuperseded] - a newer Load won
//   - [ErrNoFetcher] - Load was called on a store without a Fetcher
//
// Operations that address an unknown id are no-ops and do not fail.
package store
