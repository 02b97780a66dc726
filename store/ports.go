package store

import (
	"context"

	"github.com/jacentio/sheetstore/sheet"
)

// Persister stores and retrieves full tree snapshots.
type Persister interface {
	// Save replaces the stored snapshot with tree.
	Save(ctx context.Context, tree sheet.Tree) error

	// Load returns the stored snapshot. found is false when none exists.
	Load(ctx context.Context) (tree sheet.Tree, found bool, err error)
}

// Fetcher retrieves the raw sheet payload from a remote source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// nopPersister is used when a Store is built without a Persister.
type nopPersister struct{}

func (nopPersister) Save(context.Context, sheet.Tree) error { return nil }

func (nopPersister) Load(context.Context) (sheet.Tree, bool, error) { return nil, false, nil }
