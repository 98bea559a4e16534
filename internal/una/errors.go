package una

import "errors"

// Failure taxonomy for the archive cycle and rendering paths. Callers match
// with errors.Is; every occurrence is wrapped with enough context (user,
// index, version) to diagnose from the log alone.
var (
	// ErrMalformedDocument indicates a structural or encoding failure while
	// decoding the raw usernotes document. The cycle is aborted with nothing
	// persisted and retried on the next scheduled run.
	ErrMalformedDocument = errors.New("malformed usernotes document")

	// ErrVersionMismatch indicates the remote and archived documents carry
	// different schema versions. Fatal for the cycle: positional-index
	// assumptions about constants are unsafe across versions.
	ErrVersionMismatch = errors.New("usernotes version mismatch")

	// ErrConstantsDrift indicates a moderator or warning was removed, renamed,
	// or reordered upstream. Positional identity is broken and the merge
	// cannot proceed safely.
	ErrConstantsDrift = errors.New("usernotes constants drift")

	// ErrReferenceOutOfRange indicates a note references a constants index the
	// local tables cannot resolve.
	ErrReferenceOutOfRange = errors.New("note reference out of range")

	// ErrStorageUnavailable indicates the archive store failed. Transient:
	// the cycle is aborted and retried on schedule.
	ErrStorageUnavailable = errors.New("archive storage unavailable")

	// ErrSourceUnavailable indicates the remote notes source failed. Transient:
	// the cycle is aborted and retried on schedule.
	ErrSourceUnavailable = errors.New("notes source unavailable")
)
