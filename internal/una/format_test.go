package una_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"una-go/internal/una"
)

var testConstants = una.Constants{
	Moderators: []string{"mod_a", "mod_b"},
	Warnings:   []string{"spamwatch", "ban"},
}

func TestFormatter_Render(t *testing.T) {
	f := una.NewFormatter("testsub", time.UTC)

	t.Run("renders header and one row per note", func(t *testing.T) {
		notes := &una.UserNotes{Notes: []una.Note{
			{Moderator: 0, Timestamp: 1500000000, Warning: 1, Text: "banned for spam", Link: "l"},
			{Moderator: 1, Timestamp: 1500000300, Warning: 0, Text: "watching", Link: "l"},
		}}

		got, err := f.Render(notes, testConstants)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		want := strings.Join([]string{
			"Mod | Time | Reason | Note",
			"- | - | - | - | -",
			"mod_a | 2017-07-14 02:40:00 | ban | banned for spam",
			"mod_b | 2017-07-14 02:45:00 | spamwatch | watching",
		}, "\n")
		if got != want {
			t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("link derivation", func(t *testing.T) {
		cases := []struct {
			name string
			link string
			want string // expected time cell
		}{
			{"no link", "0", "2017-07-14 02:40:00"},
			{"submission link", "0,abc123",
				"[2017-07-14 02:40:00](https://reddit.com/r/testsub/comments/abc123)"},
			{"comment link", "0,abc123,def456",
				"[2017-07-14 02:40:00](https://reddit.com/r/testsub/comments/abc123/_/def456)"},
			{"empty token", "", "2017-07-14 02:40:00"},
			{"too many fields", "0,a,b,c", "2017-07-14 02:40:00"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				notes := &una.UserNotes{Notes: []una.Note{
					{Moderator: 0, Timestamp: 1500000000, Warning: 0, Text: "x", Link: tc.link},
				}}
				got, err := f.Render(notes, testConstants)
				if err != nil {
					t.Fatalf("Render() error = %v", err)
				}
				wantRow := "mod_a | " + tc.want + " | spamwatch | x"
				if !strings.HasSuffix(got, wantRow) {
					t.Errorf("Render() =\n%s\nwant last row:\n%s", got, wantRow)
				}
			})
		}
	})

	t.Run("renders timestamps in the injected location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		f := una.NewFormatter("testsub", loc)

		notes := &una.UserNotes{Notes: []una.Note{
			{Moderator: 0, Timestamp: 1500000000, Warning: 0, Text: "x", Link: "l"},
		}}
		got, err := f.Render(notes, testConstants)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "2017-07-14 04:40:00") {
			t.Errorf("Render() = %s, want timestamp shifted to UTC+2", got)
		}
	})

	t.Run("returns sentinel for empty notes", func(t *testing.T) {
		got, err := f.Render(&una.UserNotes{}, testConstants)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "No usernotes" {
			t.Errorf("Render() = %q, want %q", got, "No usernotes")
		}
	})

	t.Run("returns sentinel for absent user", func(t *testing.T) {
		got, err := f.Render(nil, testConstants)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "No usernotes" {
			t.Errorf("Render() = %q, want %q", got, "No usernotes")
		}
	})

	t.Run("fails on unresolvable moderator index", func(t *testing.T) {
		notes := &una.UserNotes{Notes: []una.Note{
			{Moderator: 5, Timestamp: 1500000000, Warning: 0, Text: "x", Link: "l"},
		}}
		_, err := f.Render(notes, testConstants)
		if !errors.Is(err, una.ErrReferenceOutOfRange) {
			t.Errorf("Render() error = %v, want ErrReferenceOutOfRange", err)
		}
	})

	t.Run("fails on unresolvable warning index", func(t *testing.T) {
		notes := &una.UserNotes{Notes: []una.Note{
			{Moderator: 0, Timestamp: 1500000000, Warning: 9, Text: "x", Link: "l"},
		}}
		_, err := f.Render(notes, testConstants)
		if !errors.Is(err, una.ErrReferenceOutOfRange) {
			t.Errorf("Render() error = %v, want ErrReferenceOutOfRange", err)
		}
	})
}
