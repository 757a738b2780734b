package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"pricewatch/internal/services"
)

const userAgent = "Pricewatch-Go/0.1.0"

// Fetcher downloads source images with a bounded timeout and response size.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher builds an image fetcher. A missing timeout is a defect in the
// caller's config, so a conservative default is applied rather than fetching
// unbounded.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch retrieves the image bytes at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "images", "fetch", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "images", "fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, services.Wrap(services.ErrTransient, "images", "fetch",
			fmt.Sprintf("%s returned status %d", url, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "images", "fetch", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, services.Wrap(services.ErrValidation, "images", "fetch",
			fmt.Sprintf("%s exceeds %d byte limit", url, f.maxBytes), nil)
	}
	return data, nil
}
