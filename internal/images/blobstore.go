package images

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"pricewatch/internal/services"
)

// BlobStore uploads transcoded images under a deterministic key and returns
// the stable public URL for that key. Uploads overwrite by key, which makes
// retried backfills idempotent.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// DirStore writes blobs into a local directory. It backs tests and offline
// runs where no object storage is reachable.
type DirStore struct {
	dir     string
	baseURL string
}

// NewDirStore builds a directory-backed blob store. baseURL may be empty, in
// which case a file:// URL is returned for stored keys.
func NewDirStore(dir, baseURL string) (*DirStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", "directory not configured", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", dir, err)
	}
	return &DirStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes the blob to <dir>/<key>, overwriting any previous content.
func (d *DirStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	path := filepath.Join(d.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrTransient, "storage", "put", key, err)
	}
	if d.baseURL != "" {
		return d.baseURL + "/" + url.PathEscape(key), nil
	}
	return fmt.Sprintf("file://%s", path), nil
}
