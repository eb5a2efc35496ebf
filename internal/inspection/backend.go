package inspection

import (
	"context"
	"fmt"

	"github.com/carscope/carscope/pkg/config"
)

// NewStorage builds the BlobStore selected by cfg.Backend.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Backend {
	case "", "local":
		if cfg.LocalPath == "" {
			return nil, fmt.Errorf("local storage: path is required")
		}
		return NewLocalStorage(cfg.LocalPath), nil
	case "s3":
		s, err := NewS3Storage(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "gcs":
		s, err := NewGCSStorage(ctx, cfg.Bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want local, s3 or gcs)", cfg.Backend)
	}
}
