package una

// NotesSource retrieves the latest raw usernotes document from the remote
// wiki. Network and auth failures are the implementation's responsibility
// and surface wrapped in ErrSourceUnavailable.
type NotesSource interface {
	FetchRawDocument() ([]byte, error)
}
