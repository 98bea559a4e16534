package una

import "fmt"

// ArchiveService is the orchestration layer for the two entry points: the
// periodic archive cycle and on-demand note rendering. It is synchronous and
// single-threaded: a cycle runs to completion before the next is triggered,
// and the archive is reloaded from the store at the start of every cycle so
// no state is cached across cycles.
type ArchiveService struct {
	source    NotesSource
	store     ArchiveStore
	database  Database
	formatter *Formatter
	logger    Logger
	clock     Clock
}

// NewArchiveService creates an ArchiveService with the provided dependencies.
func NewArchiveService(source NotesSource, store ArchiveStore, database Database, formatter *Formatter, logger Logger, clock Clock) *ArchiveService {
	return &ArchiveService{
		source:    source,
		store:     store,
		database:  database,
		formatter: formatter,
		logger:    logger,
		clock:     clock,
	}
}

// RunArchiveCycle performs one full archive pass: load the persisted archive,
// fetch and decode the remote snapshot, merge, and persist. The save happens
// only after the merge fully succeeds, so a failed cycle leaves the archive
// untouched. Running the cycle with no new remote notes is a no-op, so the
// scheduler may invoke it more or less frequently than planned.
func (s *ArchiveService) RunArchiveCycle() (MergeStats, error) {
	start := s.clock.Now()
	s.logger.Debug("archive cycle starting")

	archive, err := s.store.Load()
	if err != nil {
		return MergeStats{}, fmt.Errorf("loading archive: %w", err)
	}

	remote, err := s.fetchRemote()
	if err != nil {
		return MergeStats{}, err
	}

	var stats MergeStats
	if archive == nil {
		// First run: seed the archive with the full remote snapshot.
		archive = remote.Clone()
		stats = snapshotStats(remote)
		s.logger.Info("bootstrapping archive from remote snapshot",
			"ver", remote.Version, "users", stats.UsersAdded, "notes", stats.NotesAdded)
	} else {
		archive, stats, err = Merge(remote, archive)
		if err != nil {
			return MergeStats{}, fmt.Errorf("merging snapshot: %w", err)
		}
	}

	if err := s.store.Save(archive); err != nil {
		return MergeStats{}, fmt.Errorf("saving archive: %w", err)
	}

	s.logger.Info("archive cycle complete",
		"moderators_added", stats.ModeratorsAdded,
		"warnings_added", stats.WarningsAdded,
		"users_added", stats.UsersAdded,
		"notes_added", stats.NotesAdded,
		"elapsed", s.clock.Now().Sub(start).String(),
	)
	return stats, nil
}

// GetFormattedNotes fetches the current remote snapshot and renders the given
// user's notes as a markdown table. Users with no notes get the NoNotes
// sentinel.
func (s *ArchiveService) GetFormattedNotes(username string) (string, error) {
	s.logger.Debug("formatting usernotes", "user", username)

	remote, err := s.fetchRemote()
	if err != nil {
		return "", err
	}

	text, err := s.formatter.Render(remote.Blob[username], remote.Constants)
	if err != nil {
		return "", fmt.Errorf("rendering notes for %s: %w", username, err)
	}
	return text, nil
}

// GetHistory returns the most recent archive cycles, newest first.
func (s *ArchiveService) GetHistory(limit int) ([]*CycleRecord, error) {
	records, err := s.database.ListArchiveCycles(limit)
	if err != nil {
		return nil, fmt.Errorf("listing archive cycles: %w", err)
	}
	return records, nil
}

// fetchRemote retrieves and decodes the current remote snapshot.
func (s *ArchiveService) fetchRemote() (*NotesDocument, error) {
	raw, err := s.source.FetchRawDocument()
	if err != nil {
		return nil, fmt.Errorf("fetching remote snapshot: %w", err)
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding remote snapshot: %w", err)
	}
	return doc, nil
}

// snapshotStats counts a full snapshot's contents, used when bootstrapping
// the archive from scratch.
func snapshotStats(doc *NotesDocument) MergeStats {
	stats := MergeStats{
		ModeratorsAdded: len(doc.Constants.Moderators),
		WarningsAdded:   len(doc.Constants.Warnings),
		UsersAdded:      len(doc.Blob),
	}
	for _, un := range doc.Blob {
		stats.NotesAdded += len(un.Notes)
	}
	return stats
}
