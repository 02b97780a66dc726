// Package ingest fetches raw sheet payloads from the sheet API.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds configuration for an HTTPFetcher.
type Config struct {
	// Timeout bounds a whole request including the body read.
	// Default: 30s
	Timeout time.Duration

	// MaxBodyBytes caps the payload size.
	// Default: 32 MiB
	MaxBodyBytes int64

	// BreakerFailures is the number of consecutive failures that opens the circuit.
	// Default: 5
	BreakerFailures uint32

	// BreakerCooldown is how long the circuit stays open before a trial request.
	// Default: 60s
	BreakerCooldown time.Duration
}

// DefaultConfig returns sensible defaults for a public sheet API.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxBodyBytes:    32 << 20,
		BreakerFailures: 5,
		BreakerCooldown: 60 * time.Second,
	}
}

// validate fills zero values with defaults.
func (c *Config) validate() {
	d := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = d.BreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
}

// HTTPFetcher performs GET requests guarded by a circuit breaker.
type HTTPFetcher struct {
	client  *http.Client
	config  Config
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewHTTPFetcher creates a fetcher. A nil client uses a fresh http.Client with
// the configured timeout; a nil logger uses slog.Default().
func NewHTTPFetcher(client *http.Client, config Config, logger *slog.Logger) *HTTPFetcher {
	config.validate()
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &HTTPFetcher{client: client, config: config, logger: logger}
	f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "sheet-api",
		Timeout: config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// caller cancellation does not count against the API
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return f
}

// Fetch returns the response body of a GET to url. Every failure is a *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.breaker.Execute(func() (interface{}, error) {
		return f.get(ctx, url)
	})
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return nil, te
		}
		// gobreaker.ErrOpenState / ErrTooManyRequests
		return nil, &TransportError{URL: url, Err: err}
	}
	return body.([]byte), nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.config.MaxBodyBytes {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("body exceeds %d bytes", f.config.MaxBodyBytes)}
	}

	f.logger.Debug("fetched sheet payload",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

// State returns the current circuit breaker state.
func (f *HTTPFetcher) State() gobreaker.State {
	return f.breaker.State()
}
