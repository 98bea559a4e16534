package una

import (
	"fmt"
	"strings"
	"time"
)

// NoNotes is returned by Formatter.Render for users with no recorded notes.
// Callers pass it through verbatim.
const NoNotes = "No usernotes"

var formatHeader = []string{"Mod | Time | Reason | Note", "- | - | - | - | -"}

// Formatter renders a user's notes as a markdown table. The location is
// injected so rendering is deterministic in tests; production wiring passes
// time.Local.
type Formatter struct {
	subreddit string
	location  *time.Location
}

// NewFormatter creates a Formatter deriving permalinks for the given
// subreddit. A nil location defaults to time.Local.
func NewFormatter(subreddit string, location *time.Location) *Formatter {
	if location == nil {
		location = time.Local
	}
	return &Formatter{subreddit: subreddit, location: location}
}

// Render produces the table for one user's notes, one row per note:
//
//	moderator | time-or-link | reason | text
//
// The timestamp becomes a markdown link when the note carries a link token.
// Returns NoNotes for a nil or empty sequence. Fails with
// ErrReferenceOutOfRange when a note's moderator or warning index has no
// entry in the constants tables.
func (f *Formatter) Render(notes *UserNotes, constants Constants) (string, error) {
	if notes == nil || len(notes.Notes) == 0 {
		return NoNotes, nil
	}

	rows := append([]string(nil), formatHeader...)
	for i, note := range notes.Notes {
		if note.Moderator < 0 || note.Moderator >= len(constants.Moderators) {
			return "", fmt.Errorf("%w: note %d references moderator %d but only %d are known",
				ErrReferenceOutOfRange, i, note.Moderator, len(constants.Moderators))
		}
		if note.Warning < 0 || note.Warning >= len(constants.Warnings) {
			return "", fmt.Errorf("%w: note %d references warning %d but only %d are known",
				ErrReferenceOutOfRange, i, note.Warning, len(constants.Warnings))
		}

		when := time.Unix(note.Timestamp, 0).In(f.location).Format("2006-01-02 15:04:05")
		timeCell := when
		if link := f.permalink(note.Link); link != "" {
			timeCell = fmt.Sprintf("[%s](%s)", when, link)
		}

		rows = append(rows, fmt.Sprintf("%s | %s | %s | %s",
			constants.Moderators[note.Moderator],
			timeCell,
			constants.Warnings[note.Warning],
			note.Text,
		))
	}

	return strings.Join(rows, "\n"), nil
}

// permalink expands a compact link token into a full reddit URL. One field
// means no link, two a submission link, three a comment link. The first
// field is reserved and ignored. Any other shape renders no link rather
// than guessing.
func (f *Formatter) permalink(token string) string {
	fields := strings.Split(token, ",")
	switch len(fields) {
	case 2:
		return fmt.Sprintf("https://reddit.com/r/%s/comments/%s", f.subreddit, fields[1])
	case 3:
		return fmt.Sprintf("https://reddit.com/r/%s/comments/%s/_/%s", f.subreddit, fields[1], fields[2])
	default:
		return ""
	}
}
