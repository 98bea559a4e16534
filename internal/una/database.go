package una

import "time"

// CycleRecord is one row of archive-cycle history.
type CycleRecord struct {
	ID         int64
	CycleUID   string
	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool
	Status     string // "success" or "error"
	Stats      MergeStats
	Detail     string // error text on failure, empty otherwise
}

// Database records archive-cycle history so an operator can see what each
// run did without reading logs.
type Database interface {
	// CreateArchiveCycle inserts a new in-progress cycle record and returns
	// its auto-increment ID.
	CreateArchiveCycle(cycleUID string) (int64, error)

	// FinishArchiveCycle finalizes a cycle record with its outcome.
	FinishArchiveCycle(id int64, status string, stats MergeStats, detail string) error

	// ListArchiveCycles returns the most recent cycles, newest first.
	ListArchiveCycles(limit int) ([]*CycleRecord, error)

	Close() error
}
