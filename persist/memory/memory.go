// Package memory provides an in-process snapshot backend.
package memory

import (
	"context"
	"sync"

	"github.com/jacentio/sheetstore/sheet"
)

// Persister keeps the last saved snapshot in memory.
type Persister struct {
	mu    sync.Mutex
	tree  sheet.Tree
	found bool
	saves int

	// FailSave, when set, is returned by every Save instead of storing.
	FailSave error

	// FailLoad, when set, is returned by every Load.
	FailLoad error
}

// New returns an empty Persister.
func New() *Persister {
	return &Persister{}
}

// Save stores a copy of tree.
func (p *Persister) Save(_ context.Context, tree sheet.Tree) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.FailSave != nil {
		return p.FailSave
	}
	p.tree = tree.Clone()
	p.found = true
	return nil
}

// Load returns a copy of the last saved tree.
func (p *Persister) Load(context.Context) (sheet.Tree, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailLoad != nil {
		return nil, false, p.FailLoad
	}
	return p.tree.Clone(), p.found, nil
}

// Saves returns how many times Save was called, including failed calls.
func (p *Persister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
