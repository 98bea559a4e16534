package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"una-go/internal/config"
	"una-go/internal/source"
	"una-go/internal/una"
)

func TestFileSource(t *testing.T) {
	t.Run("returns file contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "usernotes.json")
		if err := os.WriteFile(path, []byte(`{"ver":6}`), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		raw, err := source.NewFileSource(path).FetchRawDocument()
		if err != nil {
			t.Fatalf("FetchRawDocument() error = %v", err)
		}
		if string(raw) != `{"ver":6}` {
			t.Errorf("FetchRawDocument() = %q", raw)
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		src := source.NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
		_, err := src.FetchRawDocument()
		if !errors.Is(err, una.ErrSourceUnavailable) {
			t.Errorf("FetchRawDocument() error = %v, want ErrSourceUnavailable", err)
		}
	})
}

func TestNewSourceFromConfig(t *testing.T) {
	t.Run("creates file source", func(t *testing.T) {
		s, err := source.NewSourceFromConfig(config.SourceConfig{
			Type:         "file",
			DocumentPath: "/tmp/usernotes.json",
		}, "testsub")
		if err != nil {
			t.Fatalf("NewSourceFromConfig() error = %v", err)
		}
		if _, ok := s.(*source.FileSource); !ok {
			t.Errorf("NewSourceFromConfig() = %T, want *FileSource", s)
		}
	})

	t.Run("file source requires document_path", func(t *testing.T) {
		if _, err := source.NewSourceFromConfig(config.SourceConfig{Type: "file"}, "testsub"); err == nil {
			t.Error("expected error for missing document_path")
		}
	})

	t.Run("creates reddit source", func(t *testing.T) {
		s, err := source.NewSourceFromConfig(config.SourceConfig{
			Type:         "reddit",
			ClientID:     "id",
			ClientSecret: "secret",
			RefreshToken: "token",
		}, "testsub")
		if err != nil {
			t.Fatalf("NewSourceFromConfig() error = %v", err)
		}
		if _, ok := s.(*source.RedditSource); !ok {
			t.Errorf("NewSourceFromConfig() = %T, want *RedditSource", s)
		}
	})

	t.Run("reddit source requires subreddit", func(t *testing.T) {
		cfg := config.SourceConfig{Type: "reddit", ClientID: "id", ClientSecret: "s", RefreshToken: "t"}
		if _, err := source.NewSourceFromConfig(cfg, ""); err == nil {
			t.Error("expected error for missing subreddit")
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		if _, err := source.NewSourceFromConfig(config.SourceConfig{Type: "telegraph"}, "testsub"); err == nil {
			t.Error("expected error for unknown source type")
		}
	})
}
