package store_test

import (
	"path/filepath"
	"testing"

	"una-go/internal/config"
	"una-go/internal/store"
)

func TestNewStoreFromConfig(t *testing.T) {
	t.Run("creates memory store", func(t *testing.T) {
		s, err := store.NewStoreFromConfig(config.StoreConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*store.MemoryStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *MemoryStore", s)
		}
	})

	t.Run("creates filesystem store", func(t *testing.T) {
		s, err := store.NewStoreFromConfig(config.StoreConfig{
			Type:        "filesystem",
			ArchivePath: filepath.Join(t.TempDir(), "archive.json"),
		})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*store.FileSystemStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *FileSystemStore", s)
		}
	})

	t.Run("filesystem store requires archive_path", func(t *testing.T) {
		if _, err := store.NewStoreFromConfig(config.StoreConfig{Type: "filesystem"}); err == nil {
			t.Error("expected error for missing archive_path")
		}
	})

	t.Run("s3 store requires bucket and key", func(t *testing.T) {
		if _, err := store.NewStoreFromConfig(config.StoreConfig{Type: "s3", S3Bucket: "b"}); err == nil {
			t.Error("expected error for missing s3_key")
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		if _, err := store.NewStoreFromConfig(config.StoreConfig{Type: "carrier-pigeon"}); err == nil {
			t.Error("expected error for unknown store type")
		}
	})
}
