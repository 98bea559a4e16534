package database

import (
	"database/sql"
	"fmt"
	"time"

	"una-go/internal/database/migrations"
	"una-go/internal/una"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the cycle-history Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase opens (or creates) the database at path and brings its
// schema up to date. path can be a file path or ":memory:".
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// Exported for tools and tests that need a properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CreateArchiveCycle inserts a new in-progress cycle record.
func (s *SQLiteDatabase) CreateArchiveCycle(cycleUID string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO archive_cycles (cycle_uid, started_at, status) VALUES (?, ?, 'running')`,
		cycleUID, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("creating archive cycle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading archive cycle id: %w", err)
	}
	return id, nil
}

// FinishArchiveCycle finalizes a cycle record with its outcome.
func (s *SQLiteDatabase) FinishArchiveCycle(id int64, status string, stats una.MergeStats, detail string) error {
	_, err := s.db.Exec(
		`UPDATE archive_cycles
		 SET finished_at = ?, status = ?, moderators_added = ?, warnings_added = ?,
		     users_added = ?, notes_added = ?, detail = ?
		 WHERE id = ?`,
		time.Now(), status, stats.ModeratorsAdded, stats.WarningsAdded,
		stats.UsersAdded, stats.NotesAdded, detail, id,
	)
	if err != nil {
		return fmt.Errorf("finishing archive cycle: %w", err)
	}
	return nil
}

// ListArchiveCycles returns the most recent cycles, newest first.
func (s *SQLiteDatabase) ListArchiveCycles(limit int) ([]*una.CycleRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, cycle_uid, started_at, finished_at, status,
		        moderators_added, warnings_added, users_added, notes_added, detail
		 FROM archive_cycles ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing archive cycles: %w", err)
	}
	defer rows.Close()

	var records []*una.CycleRecord
	for rows.Next() {
		var rec una.CycleRecord
		var finishedAt sql.NullTime
		err := rows.Scan(
			&rec.ID, &rec.CycleUID, &rec.StartedAt, &finishedAt, &rec.Status,
			&rec.Stats.ModeratorsAdded, &rec.Stats.WarningsAdded,
			&rec.Stats.UsersAdded, &rec.Stats.NotesAdded, &rec.Detail,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning archive cycle: %w", err)
		}
		if finishedAt.Valid {
			rec.FinishedAt = finishedAt.Time
			rec.Finished = true
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing archive cycles: %w", err)
	}
	return records, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements una.Database
var _ una.Database = (*SQLiteDatabase)(nil)
