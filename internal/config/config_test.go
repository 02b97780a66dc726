package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "codolio-sheet-data" {
		t.Errorf("expected default key, got %q", cfg.Storage.Key)
	}
	if cfg.Source.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Source.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
source:
  url: https://api.example.com/sheet
  timeout: 5s
storage:
  backend: dynamo
  dynamo_table: sheets
  aws_region: eu-west-1
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.URL != "https://api.example.com/sheet" {
		t.Errorf("unexpected url %q", cfg.Source.URL)
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Source.Timeout)
	}
	if cfg.Storage.Backend != BackendDynamo || cfg.Storage.DynamoTable != "sheets" || cfg.Storage.AWSRegion != "eu-west-1" {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("expected file level and default format, got %+v", cfg.Log)
	}
	if cfg.Storage.Key != "codolio-sheet-data" {
		t.Errorf("expected default key to survive, got %q", cfg.Storage.Key)
	}
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: sqlite\n")
	t.Setenv("SHEETSTORE_STORAGE_BACKEND", "memory")
	t.Setenv("SHEETSTORE_SOURCE_URL", "https://env.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected env to override file, got %q", cfg.Storage.Backend)
	}
	if cfg.Source.URL != "https://env.example.com" {
		t.Errorf("unexpected url %q", cfg.Source.URL)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: floppy\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"sqlite without path", func(c *Config) { c.Storage.SQLitePath = "" }, true},
		{"dynamo without table", func(c *Config) { c.Storage.Backend = BackendDynamo; c.Storage.DynamoTable = "" }, true},
		{"memory", func(c *Config) { c.Storage.Backend = BackendMemory }, false},
		{"negative timeout", func(c *Config) { c.Source.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
