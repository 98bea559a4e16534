package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"una-go/internal/una"
)

// MemoryStore is an in-memory implementation of the ArchiveStore interface,
// useful for testing. Documents are stored serialized so Load/Save round-trip
// semantics match the filesystem store (no shared pointers with callers).
// This implementation is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored archive, or (nil, nil) if nothing has been saved.
func (s *MemoryStore) Load() (*una.NotesDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, nil
	}
	var doc una.NotesDocument
	if err := json.Unmarshal(s.data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing stored archive: %v", una.ErrStorageUnavailable, err)
	}
	return &doc, nil
}

// Save stores a serialized copy of the archive.
func (s *MemoryStore) Save(doc *una.NotesDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encoding archive: %v", una.ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Compile-time check that MemoryStore implements una.ArchiveStore
var _ una.ArchiveStore = (*MemoryStore)(nil)
