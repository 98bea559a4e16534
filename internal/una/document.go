package una

// NotesDocument is the structured form of a toolbox usernotes wiki page.
// Instances are ephemeral: decoded fresh each cycle, consumed by Merge,
// then discarded. The persisted archive file shares this shape, with the
// blob stored as plain JSON instead of a compressed string.
type NotesDocument struct {
	Version   int                   `json:"ver"`
	Constants Constants             `json:"constants"`
	Blob      map[string]*UserNotes `json:"blob"`
}

// Constants holds the positional lookup tables notes index into.
// Existing entries are positionally immutable: index i refers to the same
// moderator or warning forever; only appends are allowed.
type Constants struct {
	Moderators []string `json:"users"`
	Warnings   []string `json:"warnings"`
}

// UserNotes is the chronological-append note sequence for one user.
type UserNotes struct {
	Notes []Note `json:"ns"`
}

// Note is a single moderation note. Moderator and Warning are indexes into
// the document's constants tables. Link is a comma-separated compact token:
// the first field is reserved, a second field is a submission ID, a third
// is a comment ID within that submission.
type Note struct {
	Moderator int    `json:"m"`
	Timestamp int64  `json:"t"`
	Warning   int    `json:"w"`
	Text      string `json:"n"`
	Link      string `json:"l"`
}

// Clone returns a deep copy of the document. Merge uses it to seed a new
// archive from a remote snapshot without aliasing the remote's slices.
func (d *NotesDocument) Clone() *NotesDocument {
	out := &NotesDocument{
		Version: d.Version,
		Constants: Constants{
			Moderators: append([]string(nil), d.Constants.Moderators...),
			Warnings:   append([]string(nil), d.Constants.Warnings...),
		},
		Blob: make(map[string]*UserNotes, len(d.Blob)),
	}
	for user, un := range d.Blob {
		out.Blob[user] = &UserNotes{Notes: append([]Note(nil), un.Notes...)}
	}
	return out
}
