package images

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pricewatch/internal/config"
	"pricewatch/internal/services"
)

// S3Store uploads blobs to an S3-compatible bucket.
type S3Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewS3Store builds an object storage client from configuration.
func NewS3Store(cfg config.Storage) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init", cfg.Endpoint, err)
	}
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put uploads the blob under key, overwriting any existing object, and
// returns the public URL the catalog should record.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "storage", "put", key, err)
	}
	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.baseURL != "" {
		return s.baseURL + "/" + escaped
	}
	endpoint := s.client.EndpointURL()
	return strings.TrimRight(endpoint.String(), "/") + "/" + s.bucket + "/" + escaped
}
