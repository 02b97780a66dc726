package store

import (
	"github.com/google/uuid"
)

// Kind names the level of a node being created.
type Kind string

const (
	KindTopic    Kind = "topic"
	KindSubTopic Kind = "subtopic"
	KindQuestion Kind = "question"
)

// IDGenerator produces ids for new nodes. Ids must never repeat within a tree.
type IDGenerator interface {
	NewID(kind Kind) string
}

// IDFunc adapts a function to the IDGenerator interface.
type IDFunc func(kind Kind) string

// NewID calls f(kind).
func (f IDFunc) NewID(kind Kind) string { return f(kind) }

// UUIDs returns a generator of ids of the form "<kind>-<uuid>".
func UUIDs() IDGenerator {
	return IDFunc(func(kind Kind) string {
		return string(kind) + "-" + uuid.NewString()
	})
}
