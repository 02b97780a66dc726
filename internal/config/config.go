// Package config loads sheetstore configuration from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jacentio/sheetstore/persist"
)

// AppName is used for the config directory and the environment prefix.
const AppName = "sheetstore"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendDynamo = "dynamo"
	BackendMemory = "memory"
)

// Config is the full sheetstore configuration.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// SourceConfig describes the sheet API.
type SourceConfig struct {
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
}

// StorageConfig selects and configures the snapshot backend.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"` // sqlite, dynamo, memory
	Key         string `mapstructure:"key"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DynamoTable string `mapstructure:"dynamo_table"`
	AWSProfile  string `mapstructure:"aws_profile"`
	AWSRegion   string `mapstructure:"aws_region"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // text, json
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", AppName)
	}
	return Config{
		Source: SourceConfig{
			Timeout:         30 * time.Second,
			BreakerFailures: 5,
		},
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			Key:         persist.DefaultKey,
			SQLitePath:  filepath.Join(dataDir, "sheet.db"),
			DynamoTable: "sheetstore_snapshots",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// searchPaths returns the config directories in increasing order of precedence.
func searchPaths() []string {
	paths := []string{filepath.Join("/etc", AppName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range searchPaths() {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("source.breaker_failures", d.Source.BreakerFailures)

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.dynamo_table", d.Storage.DynamoTable)
	v.SetDefault("storage.aws_profile", d.Storage.AWSProfile)
	v.SetDefault("storage.aws_region", d.Storage.AWSRegion)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
}

// Load reads cfgFile (or config.yaml from the search paths when empty),
// overlays SHEETSTORE_* environment variables and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := newViper()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the backend selection and its required settings.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("config: storage.sqlite_path is required for the sqlite backend")
		}
	case BackendDynamo:
		if c.Storage.DynamoTable == "" {
			return errors.New("config: storage.dynamo_table is required for the dynamo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Source.Timeout < 0 {
		return errors.New("config: source.timeout must not be negative")
	}
	return nil
}
