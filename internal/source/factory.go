package source

import (
	"fmt"

	"una-go/internal/config"
	"una-go/internal/una"
)

// NewSourceFromConfig creates a NotesSource implementation based on the source config type.
func NewSourceFromConfig(cfg config.SourceConfig, subreddit string) (una.NotesSource, error) {
	switch cfg.Type {
	case "reddit":
		if subreddit == "" {
			return nil, fmt.Errorf("reddit source requires subreddit to be set")
		}
		return NewRedditSource(cfg, subreddit)
	case "file":
		if cfg.DocumentPath == "" {
			return nil, fmt.Errorf("file source requires document_path to be set")
		}
		return NewFileSource(cfg.DocumentPath), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}
