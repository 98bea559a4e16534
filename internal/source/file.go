package source

import (
	"fmt"
	"os"

	"una-go/internal/una"
)

// FileSource reads the raw usernotes document from a local file. Useful for
// archiving from a wiki dump or replaying a snapshot offline.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchRawDocument returns the file contents.
func (s *FileSource) FetchRawDocument() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", una.ErrSourceUnavailable, s.path, err)
	}
	return data, nil
}

// Compile-time check that FileSource implements una.NotesSource
var _ una.NotesSource = (*FileSource)(nil)
