// Package sqlite stores sheet snapshots in a local SQLite key/value table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jacentio/sheetstore/persist"
	"github.com/jacentio/sheetstore/sheet"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	version    INTEGER NOT NULL DEFAULT 1,
	updated_at TEXT NOT NULL
)`

// Config holds configuration for the SQLite backend.
type Config struct {
	// Path is the database file. Parent directories are created.
	Path string

	// Key is the row key the snapshot is stored under.
	// Default: persist.DefaultKey
	Key string
}

// Persister implements store.Persister on a SQLite database.
type Persister struct {
	db  *sql.DB
	key string

	mu     sync.Mutex
	closed bool
}

// Open opens (creating if needed) the database at cfg.Path.
func Open(ctx context.Context, cfg Config) (*Persister, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if cfg.Key == "" {
		cfg.Key = persist.DefaultKey
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer; WAL lets readers in other processes proceed.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		schema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &Persister{db: db, key: cfg.Key}, nil
}

// Save upserts the snapshot row and bumps its version.
func (p *Persister) Save(ctx context.Context, tree sheet.Tree) error {
	body, err := json.Marshal(sheet.Normalize(tree))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, version, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = snapshots.version + 1,
			updated_at = excluded.updated_at`,
		p.key, string(body), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot row. found is false if the row does not exist.
func (p *Persister) Load(ctx context.Context) (sheet.Tree, bool, error) {
	var body string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM snapshots WHERE key = ?", p.key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}

	var tree sheet.Tree
	if err := json.Unmarshal([]byte(body), &tree); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return sheet.Normalize(tree), true, nil
}

// Version returns the number of times the snapshot has been written, or 0.
func (p *Persister) Version(ctx context.Context) (int64, error) {
	var v int64
	err := p.db.QueryRowContext(ctx, "SELECT version FROM snapshots WHERE key = ?", p.key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

// Close closes the database.
func (p *Persister) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}
