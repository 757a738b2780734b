package testsupport

import (
	"path/filepath"
	"testing"

	"pricewatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "snapshots")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.UnmatchedLog = filepath.Join(base, "logs", "unmatched_log.txt")
	cfg.Storage.Backend = config.StorageBackendDir
	cfg.Storage.Dir = filepath.Join(base, "images")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithImagesDisabled turns off the image backfill pipeline.
func WithImagesDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Images.Enabled = false
	}
}

// WithInputDir overrides the snapshot input tree.
func WithInputDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.InputDir = dir
	}
}
