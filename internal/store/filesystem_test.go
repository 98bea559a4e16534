package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"una-go/internal/store"
	"una-go/internal/una"
)

func sampleDoc() *una.NotesDocument {
	return &una.NotesDocument{
		Version: 6,
		Constants: una.Constants{
			Moderators: []string{"mod_a", "mod_b"},
			Warnings:   []string{"spamwatch", "ban"},
		},
		Blob: map[string]*una.UserNotes{
			"alice": {Notes: []una.Note{
				{Moderator: 0, Timestamp: 100, Warning: 1, Text: "first", Link: "l,abc12"},
				{Moderator: 1, Timestamp: 200, Warning: 0, Text: "second", Link: "l"},
			}},
		},
	}
}

func TestFileSystemStore(t *testing.T) {
	t.Run("load returns nil for missing archive", func(t *testing.T) {
		s, err := store.NewFileSystemStore(filepath.Join(t.TempDir(), "archive.json"))
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if doc != nil {
			t.Errorf("Load() = %+v, want nil for missing archive", doc)
		}
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		s, err := store.NewFileSystemStore(filepath.Join(t.TempDir(), "archive.json"))
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}

		want := sampleDoc()
		if err := s.Save(want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
		}
	})

	t.Run("writes the documented on-disk shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "archive.json")
		s, err := store.NewFileSystemStore(path)
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		if err := s.Save(sampleDoc()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading archive file: %v", err)
		}

		// Other tooling reads this file: check the raw key names directly.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("archive file is not valid JSON: %v", err)
		}
		for _, key := range []string{"ver", "constants", "blob"} {
			if _, ok := raw[key]; !ok {
				t.Errorf("archive file missing top-level key %q", key)
			}
		}

		var blob map[string]struct {
			Ns []map[string]json.RawMessage `json:"ns"`
		}
		if err := json.Unmarshal(raw["blob"], &blob); err != nil {
			t.Fatalf("blob is not the expected shape: %v", err)
		}
		for _, key := range []string{"m", "t", "w", "n", "l"} {
			if _, ok := blob["alice"].Ns[0][key]; !ok {
				t.Errorf("note missing key %q", key)
			}
		}
	})

	t.Run("loads an archive written by other tooling", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "archive.json")
		raw := `{
			"ver": 6,
			"constants": {"users": ["mod_a"], "warnings": ["ban"]},
			"blob": {"bob": {"ns": [{"m": 0, "t": 42, "w": 0, "n": "hi", "l": "l"}]}}
		}`
		if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		s, err := store.NewFileSystemStore(path)
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := una.Note{Moderator: 0, Timestamp: 42, Warning: 0, Text: "hi", Link: "l"}
		if doc.Blob["bob"].Notes[0] != want {
			t.Errorf("note = %+v, want %+v", doc.Blob["bob"].Notes[0], want)
		}
	})

	t.Run("load fails on corrupt archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "archive.json")
		if err := os.WriteFile(path, []byte("{truncated"), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		s, err := store.NewFileSystemStore(path)
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		if _, err := s.Load(); err == nil {
			t.Error("Load() expected error for corrupt archive")
		}
	})

	t.Run("save leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		s, err := store.NewFileSystemStore(filepath.Join(dir, "archive.json"))
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		if err := s.Save(sampleDoc()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "archive.json" {
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Name()
			}
			t.Errorf("dir contents = %v, want only archive.json", names)
		}
	})
}
