package app

import (
	"fmt"
	"os"
	"time"

	"una-go/internal/config"
	"una-go/internal/database"
	"una-go/internal/source"
	"una-go/internal/store"
	"una-go/internal/una"
)

// UnaApp is the application layer between the CLI and the ArchiveService.
// It constructs all dependencies from config, records per-cycle history
// rows, and manages resource lifecycle on Close.
type UnaApp struct {
	cfg     *config.Config
	db      una.Database
	store   una.ArchiveStore
	source  una.NotesSource
	service *una.ArchiveService
	logger  una.Logger
	idgen   una.IDGenerator
	logFile *os.File
}

// NewUnaApp creates a fully wired UnaApp from the given config.
// operation identifies the CLI command being run (e.g. "RunArchiveCycle").
// The caller must call Close when done.
func NewUnaApp(cfg *config.Config, operation string) (*UnaApp, error) {
	if cfg.Subreddit == "" {
		return nil, fmt.Errorf("no subreddit configured")
	}

	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating archive store: %w", err)
	}

	src, err := source.NewSourceFromConfig(cfg.Source, cfg.Subreddit)
	if err != nil {
		return nil, fmt.Errorf("creating notes source: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger.With("op", operation)}

	formatter := una.NewFormatter(cfg.Subreddit, time.Local)
	svc := una.NewArchiveService(src, st, db, formatter, logger, una.RealClock{})

	return &UnaApp{
		cfg:     cfg,
		db:      db,
		store:   st,
		source:  src,
		service: svc,
		logger:  logger,
		idgen:   una.UUIDGenerator{},
		logFile: logFile,
	}, nil
}

// RunArchiveCycle runs one archive cycle, recording it in the history
// database. The history row is created before the cycle and finalized with
// the outcome, so an operator can see crashed cycles as stuck "running".
func (a *UnaApp) RunArchiveCycle() (una.MergeStats, error) {
	uid := a.idgen.New()
	recordID, err := a.db.CreateArchiveCycle(uid)
	if err != nil {
		return una.MergeStats{}, fmt.Errorf("recording archive cycle: %w", err)
	}

	stats, cycleErr := a.service.RunArchiveCycle()

	status, detail := "success", ""
	if cycleErr != nil {
		status, detail = "error", cycleErr.Error()
		a.logger.Error("archive cycle failed", "cycle_uid", uid, "error", cycleErr)
	}
	if err := a.db.FinishArchiveCycle(recordID, status, stats, detail); err != nil {
		// The archive itself already persisted (or the cycle failed);
		// a lost history row is not worth failing the run over.
		a.logger.Warn("finalizing cycle record failed", "cycle_uid", uid, "error", err)
	}

	return stats, cycleErr
}

// RunDaemon runs archive cycles forever on a fixed interval, starting with
// one immediately. Cycle failures are logged and the next run proceeds on
// schedule; nothing is partially written, so a failed cycle is safe to retry.
func (a *UnaApp) RunDaemon(interval time.Duration) {
	a.logger.Info("daemon starting", "interval", interval.String())
	for {
		// Errors are already logged and recorded by RunArchiveCycle.
		a.RunArchiveCycle()
		time.Sleep(interval)
	}
}

// IntervalHours returns the configured daemon interval in hours.
func (a *UnaApp) IntervalHours() int {
	if a.cfg.Archive.IntervalHours <= 0 {
		return 8
	}
	return a.cfg.Archive.IntervalHours
}

// GetNotes returns the formatted usernotes for the given user.
func (a *UnaApp) GetNotes(username string) (string, error) {
	return a.service.GetFormattedNotes(username)
}

// GetHistory returns the most recent archive cycles.
func (a *UnaApp) GetHistory(limit int) ([]*una.CycleRecord, error) {
	return a.service.GetHistory(limit)
}

// Close closes all resources.
func (a *UnaApp) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
