package source

import (
	"sync"

	"una-go/internal/una"
)

// MemorySource serves a raw document held in memory. Use in tests.
// This implementation is safe for concurrent use.
type MemorySource struct {
	mu  sync.RWMutex
	raw []byte
	err error
}

// NewMemorySource creates a source that returns the given raw document.
func NewMemorySource(raw []byte) *MemorySource {
	return &MemorySource{raw: raw}
}

// SetRaw replaces the served document.
func (s *MemorySource) SetRaw(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.err = nil
}

// SetError makes subsequent fetches fail with err.
func (s *MemorySource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// FetchRawDocument returns the held document or the injected error.
func (s *MemorySource) FetchRawDocument() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]byte(nil), s.raw...), nil
}

// Compile-time check that MemorySource implements una.NotesSource
var _ una.NotesSource = (*MemorySource)(nil)
