// Package app wires configuration into a ready Store for the sheetstore commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/sheetstore/ingest"
	"github.com/jacentio/sheetstore/internal/config"
	"github.com/jacentio/sheetstore/persist/dynamo"
	"github.com/jacentio/sheetstore/persist/memory"
	"github.com/jacentio/sheetstore/persist/sqlite"
	"github.com/jacentio/sheetstore/store"
)

// Backend is an opened snapshot backend.
type Backend struct {
	Persister store.Persister
	Name      string
	close     func() error
}

// Close releases the backend's resources.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// AWSConfig loads the AWS SDK configuration, honouring the configured
// profile and region when set.
func AWSConfig(ctx context.Context, cfg config.StorageConfig) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.AWSProfile))
	}
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// OpenBackend opens the snapshot backend named by cfg.Backend.
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{Persister: memory.New(), Name: cfg.Backend}, nil

	case config.BackendSQLite:
		p, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLitePath, Key: cfg.Key})
		if err != nil {
			return nil, err
		}
		return &Backend{Persister: p, Name: cfg.Backend, close: p.Close}, nil

	case config.BackendDynamo:
		awsCfg, err := AWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p := dynamo.New(dynamodb.NewFromConfig(awsCfg), dynamo.Config{
			Table: cfg.DynamoTable,
			Key:   cfg.Key,
		})
		return &Backend{Persister: p, Name: cfg.Backend}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewFetcher builds the HTTP fetcher described by cfg.
func NewFetcher(cfg config.SourceConfig, logger *slog.Logger) *ingest.HTTPFetcher {
	fc := ingest.DefaultConfig()
	if cfg.Timeout > 0 {
		fc.Timeout = cfg.Timeout
	}
	if cfg.BreakerFailures > 0 {
		fc.BreakerFailures = cfg.BreakerFailures
	}
	return ingest.NewHTTPFetcher(nil, fc, logger)
}

// NewStore opens the configured backend and returns an initialized Store.
// The caller must Close the returned Backend.
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, *Backend, error) {
	backend, err := OpenBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	sc := store.DefaultConfig()
	sc.SourceURL = cfg.Source.URL
	sc.FetchTimeout = cfg.Source.Timeout
	sc.Logger = logger

	s := store.New(backend.Persister, NewFetcher(cfg.Source, logger), sc)
	s.Initialize(ctx)
	return s, backend, nil
}
