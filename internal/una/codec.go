package una

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// rawDocument is the wire shape of the wiki page: outer JSON with the note
// blob still base64-encoded and zlib-compressed. Pointer fields distinguish
// absent keys from zero values.
type rawDocument struct {
	Version   *int       `json:"ver"`
	Constants *Constants `json:"constants"`
	Blob      *string    `json:"blob"`
}

// DecodeDocument parses a raw usernotes wiki document into a NotesDocument.
// The blob field is base64-decoded, zlib-decompressed, and parsed as a JSON
// mapping from username to note sequence. Any structural failure wraps
// ErrMalformedDocument. Pure transformation, no side effects.
func DecodeDocument(raw []byte) (*NotesDocument, error) {
	var outer rawDocument
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("%w: parsing outer document: %v", ErrMalformedDocument, err)
	}
	if outer.Version == nil || outer.Constants == nil || outer.Blob == nil {
		return nil, fmt.Errorf("%w: missing ver, constants, or blob field", ErrMalformedDocument)
	}

	compressed, err := base64.StdEncoding.DecodeString(*outer.Blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding blob base64: %v", ErrMalformedDocument, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: opening blob for decompression: %v", ErrMalformedDocument, err)
	}
	inner, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing blob: %v", ErrMalformedDocument, err)
	}

	blob := make(map[string]*UserNotes)
	if err := json.Unmarshal(inner, &blob); err != nil {
		return nil, fmt.Errorf("%w: parsing decompressed blob: %v", ErrMalformedDocument, err)
	}

	return &NotesDocument{
		Version:   *outer.Version,
		Constants: *outer.Constants,
		Blob:      blob,
	}, nil
}

// EncodeDocument is the inverse of DecodeDocument: it serializes the note
// blob as JSON, zlib-compresses it, base64-encodes the result, and wraps it
// in the outer wire document. Needed for round-trip writers back to the wiki.
func EncodeDocument(doc *NotesDocument) ([]byte, error) {
	inner, err := json.Marshal(doc.Blob)
	if err != nil {
		return nil, fmt.Errorf("encoding blob: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(inner); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compressing blob: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing blob: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	out, err := json.Marshal(rawDocument{
		Version:   &doc.Version,
		Constants: &doc.Constants,
		Blob:      &encoded,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding outer document: %w", err)
	}
	return out, nil
}
