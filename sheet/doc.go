// Package sheet defines the Topic → SubTopic → Question hierarchy of a study
// sheet and the pure operations that produce a new tree from an old one.
//
// No function in this package mutates its input. Every mutation returns a new
// [Tree] that shares untouched subtrees with the old one, and the caller
// decides whether to commit it. Persistence and locking live in package store.
//
// # Missing ids
//
// Operations that address a node by id are no-ops when the id is unknown: the
// returned tree is equal to the input. Only index-based operations validate
// strictly and fail with [*IndexError].
package sheet
