package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"una-go/internal/una"
)

// FileSystemStore persists the archive as an indented JSON file. The file
// shape is the documented on-disk contract: other tooling reads it directly,
// so it is always plain JSON, never compressed or encoded. Writes are atomic
// (temp file + rename) so a failed save leaves the previous archive intact.
type FileSystemStore struct {
	path string
}

// NewFileSystemStore creates a store backed by the file at path. The parent
// directory is created if needed.
func NewFileSystemStore(path string) (*FileSystemStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &FileSystemStore{path: path}, nil
}

// Load reads the persisted archive. Returns (nil, nil) when no archive file
// exists yet.
func (s *FileSystemStore) Load() (*una.NotesDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", una.ErrStorageUnavailable, s.path, err)
	}

	var doc una.NotesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", una.ErrStorageUnavailable, s.path, err)
	}
	return &doc, nil
}

// Save persists the archive atomically.
func (s *FileSystemStore) Save(doc *una.NotesDocument) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding archive: %v", una.ErrStorageUnavailable, err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-archive-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", una.ErrStorageUnavailable, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w: writing archive: %v", una.ErrStorageUnavailable, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", una.ErrStorageUnavailable, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: renaming temp file: %v", una.ErrStorageUnavailable, err)
	}

	success = true
	return nil
}

// Path returns the archive file path.
func (s *FileSystemStore) Path() string {
	return s.path
}

// Compile-time check that FileSystemStore implements una.ArchiveStore
var _ una.ArchiveStore = (*FileSystemStore)(nil)
