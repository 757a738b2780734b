package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultNormalizesAndValidates(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "images")
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Paths.UnmatchedLog == "" {
		t.Fatal("expected unmatched log path to default under log_dir")
	}
	if !strings.HasPrefix(cfg.Paths.UnmatchedLog, cfg.Paths.LogDir) {
		t.Fatalf("unmatched log %q not under log dir %q", cfg.Paths.UnmatchedLog, cfg.Paths.LogDir)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[paths]
input_dir = "` + filepath.Join(base, "in") + `"
data_dir = "` + filepath.Join(base, "data") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[storage]
backend = "dir"
dir = "` + filepath.Join(base, "images") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Paths.InputDir != filepath.Join(base, "in") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Images.Quality != defaultImageQuality {
		t.Fatalf("expected default quality, got %d", cfg.Images.Quality)
	}
}

func TestValidateRejectsBadStorageBackend(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "ftp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported storage backend")
	}
}

func TestValidateRejectsBadQuality(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = t.TempDir()
	cfg.Images.Quality = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for quality out of range")
	}
}

func TestS3CredentialsFromEnv(t *testing.T) {
	t.Setenv("PRICEWATCH_S3_ACCESS_KEY", "ak")
	t.Setenv("PRICEWATCH_S3_SECRET_KEY", "sk")

	cfg := Default()
	cfg.Storage.Backend = StorageBackendS3
	cfg.Storage.Endpoint = "storage.example.com"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.Storage.AccessKey != "ak" || cfg.Storage.SecretKey != "sk" {
		t.Fatalf("expected env credentials, got %q/%q", cfg.Storage.AccessKey, cfg.Storage.SecretKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("s3 config should validate with env credentials: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := expandPath("~/snapshots")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if got != filepath.Join(home, "snapshots") {
		t.Fatalf("expandPath = %q", got)
	}
}
