package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateImages() error {
	if !c.Images.Enabled {
		return nil
	}
	if c.Images.FetchTimeoutSeconds <= 0 {
		return errors.New("images.fetch_timeout_seconds must be positive")
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return errors.New("images.quality must be between 1 and 100")
	}
	if c.Images.MaxFetchBytes <= 0 {
		return errors.New("images.max_fetch_bytes must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !c.Images.Enabled {
		return nil
	}
	switch c.Storage.Backend {
	case StorageBackendDir:
		if strings.TrimSpace(c.Storage.Dir) == "" {
			return errors.New("storage.dir must be set when storage.backend is \"dir\"")
		}
	case StorageBackendS3:
		if strings.TrimSpace(c.Storage.Endpoint) == "" {
			return errors.New("storage.endpoint must be set when storage.backend is \"s3\"")
		}
		if strings.TrimSpace(c.Storage.Bucket) == "" {
			return errors.New("storage.bucket must be set when storage.backend is \"s3\"")
		}
		if strings.TrimSpace(c.Storage.AccessKey) == "" || strings.TrimSpace(c.Storage.SecretKey) == "" {
			return errors.New("storage.access_key and storage.secret_key are required. Set PRICEWATCH_S3_ACCESS_KEY / PRICEWATCH_S3_SECRET_KEY env vars or edit the config file")
		}
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (expected \"s3\" or \"dir\")", c.Storage.Backend)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
