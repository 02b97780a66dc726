package store

import (
	"log/slog"
	"time"

	"github.com/jacentio/sheetstore/transform"
)

// Config holds configuration for the Store.
type Config struct {
	// SourceURL is the sheet API endpoint used by Load when called with an empty URL.
	SourceURL string

	// FetchTimeout bounds a single fetch. Zero leaves the timeout to the Fetcher.
	// Default: 0
	FetchTimeout time.Duration

	// IDs generates ids for created nodes.
	// Default: UUIDs
	IDs IDGenerator

	// Logger receives persistence failures and load outcomes.
	// Default: slog.Default()
	Logger *slog.Logger

	// Reporter receives records skipped during a load.
	// Default: transform.LogReporter(Logger)
	Reporter transform.Reporter
}

// DefaultConfig returns a config with UUID ids and the default logger.
func DefaultConfig() Config {
	return Config{
		IDs:    UUIDs(),
		Logger: slog.Default(),
	}
}

// validate fills unset fields with their defaults.
func (c *Config) validate() {
	if c.IDs == nil {
		c.IDs = UUIDs()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Reporter == nil {
		c.Reporter = transform.LogReporter(c.Logger)
	}
	if c.FetchTimeout < 0 {
		c.FetchTimeout = 0
	}
}
