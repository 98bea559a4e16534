package una

// ArchiveStore persists the long-lived archive document. Save-then-Load must
// be lossless: note and constants ordering is preserved exactly, JSON field
// order is irrelevant. I/O failures wrap ErrStorageUnavailable.
type ArchiveStore interface {
	// Load returns the persisted archive, or (nil, nil) when no archive has
	// been written yet (first run).
	Load() (*NotesDocument, error)

	// Save persists the archive atomically: a failed save leaves any
	// previously persisted archive intact.
	Save(doc *NotesDocument) error
}
