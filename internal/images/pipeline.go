package images

import (
	"context"
	"log/slog"
	"time"

	"pricewatch/internal/config"
	"pricewatch/internal/logging"
	"pricewatch/internal/services"
)

// SpecImages is the slice of the catalog the pipeline needs: reading a
// record's current image URL and writing one only when absent.
type SpecImages interface {
	ImageURL(ctx context.Context, table, id string) (string, bool, error)
	SetImageURLIfAbsent(ctx context.Context, table, id, url string) (bool, error)
}

// Pipeline backfills missing product images: fetch, transcode to WebP,
// upload to object storage, and record the public URL on the specification
// record. Every step is best-effort; a failure leaves the record untouched
// for a future run to retry and never affects pricing.
type Pipeline struct {
	specs   SpecImages
	fetcher *Fetcher
	blobs   BlobStore
	quality int
	logger  *slog.Logger
}

// NewPipeline wires the backfill pipeline.
func NewPipeline(cfg config.Images, specs SpecImages, blobs BlobStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		specs:   specs,
		fetcher: NewFetcher(time.Duration(cfg.FetchTimeoutSeconds)*time.Second, cfg.MaxFetchBytes),
		blobs:   blobs,
		quality: cfg.Quality,
		logger:  logging.NewComponentLogger(logger, "images"),
	}
}

// Backfill ensures the specification record has a stored image. A record
// with an existing image is a successful no-op; the image URL is set at most
// once and never overwritten.
func (p *Pipeline) Backfill(ctx context.Context, table, specID, sourceURL string) error {
	if p == nil {
		return nil
	}

	current, found, err := p.specs.ImageURL(ctx, table, specID)
	if err != nil {
		return services.Wrap(services.ErrBackend, "images", "read image url", specID, err)
	}
	if !found {
		return services.Wrap(services.ErrNotFound, "images", "read image url", specID, nil)
	}
	if current != "" {
		return nil
	}

	data, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return err
	}

	encoded, err := Transcode(data, p.quality)
	if err != nil {
		return err
	}

	key := specID + ".webp"
	publicURL, err := p.blobs.Put(ctx, key, ContentType, encoded)
	if err != nil {
		return err
	}

	// The absence check is re-verified by the guarded write; losing the race
	// to another backfill still counts as success.
	set, err := p.specs.SetImageURLIfAbsent(ctx, table, specID, publicURL)
	if err != nil {
		return services.Wrap(services.ErrBackend, "images", "record image url", specID, err)
	}
	if set {
		p.logger.Debug("image backfilled",
			logging.String(logging.FieldSpecTable, table),
			logging.String(logging.FieldSpecID, specID),
			logging.String("url", publicURL))
	}
	return nil
}
