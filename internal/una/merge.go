package una

import "fmt"

// MergeStats counts what a merge added to the archive.
type MergeStats struct {
	ModeratorsAdded int
	WarningsAdded   int
	UsersAdded      int
	NotesAdded      int
}

// Merge reconciles a freshly decoded remote snapshot into the archive and
// returns the updated archive along with counts of what was added. The
// remote document is never mutated; the archive is mutated in place and
// returned for persistence. Re-merging the same remote snapshot is a no-op.
//
// Rules:
//   - Versions must match exactly; the caller treats a mismatch as fatal.
//   - Constants are append-only. An index present in both documents must
//     compare equal: anything else means a moderator or warning was removed,
//     renamed, or reordered upstream, which cannot be reconciled safely.
//   - A remote note is new iff no archived note for the same user shares its
//     timestamp. New notes are appended in remote order. Archived notes are
//     never modified, removed, or reordered.
func Merge(remote, archive *NotesDocument) (*NotesDocument, MergeStats, error) {
	var stats MergeStats

	if remote.Version != archive.Version {
		return nil, stats, fmt.Errorf("%w: archive ver %d, remote ver %d",
			ErrVersionMismatch, archive.Version, remote.Version)
	}

	mods, added, err := extendConstants(remote.Constants.Moderators, archive.Constants.Moderators, "moderator")
	if err != nil {
		return nil, stats, err
	}
	stats.ModeratorsAdded = added

	warnings, added, err := extendConstants(remote.Constants.Warnings, archive.Constants.Warnings, "warning")
	if err != nil {
		return nil, stats, err
	}
	stats.WarningsAdded = added

	archive.Constants.Moderators = mods
	archive.Constants.Warnings = warnings

	if archive.Blob == nil {
		archive.Blob = make(map[string]*UserNotes)
	}
	for user, remoteNotes := range remote.Blob {
		archived, ok := archive.Blob[user]
		if !ok || archived == nil {
			archive.Blob[user] = &UserNotes{Notes: append([]Note(nil), remoteNotes.Notes...)}
			stats.UsersAdded++
			stats.NotesAdded += len(remoteNotes.Notes)
			continue
		}
		for _, note := range remoteNotes.Notes {
			if hasNoteAt(archived.Notes, note.Timestamp) {
				continue
			}
			archived.Notes = append(archived.Notes, note)
			stats.NotesAdded++
		}
	}

	return archive, stats, nil
}

// extendConstants appends entries present in remote beyond the end of the
// archive list. Entries present in both must be positionally identical.
func extendConstants(remote, archive []string, kind string) ([]string, int, error) {
	added := 0
	for i, entry := range remote {
		if i < len(archive) {
			if archive[i] != entry {
				return nil, 0, fmt.Errorf("%w: %s %d is %q in archive but %q in remote",
					ErrConstantsDrift, kind, i, archive[i], entry)
			}
			continue
		}
		archive = append(archive, entry)
		added++
	}
	return archive, added, nil
}

// hasNoteAt reports whether any note in the sequence carries the given
// timestamp. Timestamp equality is the sole note identity key: two distinct
// notes in the same second collapse into one, matching reference behavior.
func hasNoteAt(notes []Note, timestamp int64) bool {
	for _, n := range notes {
		if n.Timestamp == timestamp {
			return true
		}
	}
	return false
}
