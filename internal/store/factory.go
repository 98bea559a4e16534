package store

import (
	"context"
	"fmt"

	"una-go/internal/config"
	"una-go/internal/una"
)

// NewStoreFromConfig creates an ArchiveStore implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig) (una.ArchiveStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.ArchivePath == "" {
			return nil, fmt.Errorf("filesystem store requires archive_path to be set")
		}
		return NewFileSystemStore(cfg.ArchivePath)
	case "s3":
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, fmt.Errorf("s3 store requires s3_bucket and s3_key to be set")
		}
		return NewS3Store(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
