// Package persist holds the snapshot backends used by package store.
//
// Every backend stores the whole tree under a single fixed key and implements
// store.Persister:
//
//   - memory: process-local, for tests and throwaway sessions
//   - sqlite: a key/value table in a local SQLite file
//   - dynamo: a single DynamoDB item
//
// The snapshot body is the JSON encoding of sheet.Tree, so a snapshot written
// by one backend can be copied into another verbatim.
package persist

// DefaultKey is the storage key snapshots are written under.
const DefaultKey = "codolio-sheet-data"
