// Package storage stores campground images on the local filesystem or in an S3 bucket
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yelpcamp/backend/internal/config"
	"github.com/yelpcamp/backend/internal/models"
)

// ErrInvalidFilename is returned for filenames that do not name a stored image
var ErrInvalidFilename = errors.New("invalid image filename")

// ImageStore uploads and deletes campground images.
// Filename of the returned image is the identifier passed to Delete.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error)
	Delete(ctx context.Context, filename string) error
}

// New creates the image store selected by the configuration
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Backend {
	case config.StorageLocal:
		return NewLocalStorage(cfg.MediaBasePath, cfg.MediaBaseURL), nil
	case config.StorageS3:
		return NewS3Storage(ctx, S3Options{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
			Prefix:    cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown image storage backend %q", cfg.Backend)
	}
}
