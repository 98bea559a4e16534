package store_test

import (
	"reflect"
	"testing"

	"una-go/internal/store"
)

func TestMemoryStore(t *testing.T) {
	t.Run("load returns nil before first save", func(t *testing.T) {
		s := store.NewMemoryStore()
		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if doc != nil {
			t.Errorf("Load() = %+v, want nil", doc)
		}
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		s := store.NewMemoryStore()
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

	t.Run("load returns an independent copy", func(t *testing.T) {
		s := store.NewMemoryStore()
		if err := s.Save(sampleDoc()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		first, _ := s.Load()
		first.Blob["alice"].Notes[0].Text = "mutated"

		second, _ := s.Load()
		if second.Blob["alice"].Notes[0].Text != "first" {
			t.Error("Load() returned a shared document")
		}
	})
}
