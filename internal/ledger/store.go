package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a handle on the ledger database.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open creates or opens the ledger at path and prepares its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores run and its per-stock results in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is empty")
	}
	return retryOnBusy(ctx, func() error { return s.recordRun(ctx, run) })
}

func (s *Store) recordRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, input_root, output_dir, imported, skipped, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputRoot,
		run.OutputDir,
		run.Imported,
		run.Skipped,
		run.Failed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, r := range run.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stock_results (
                run_id, slug, source_dir, status, output_path, sha256, reason
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			r.Slug,
			r.SourceDir,
			r.Status,
			nullableString(r.OutputPath),
			nullableString(r.SHA256),
			nullableString(r.Reason),
		); err != nil {
			return fmt.Errorf("insert result %s: %w", r.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first, without their results.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, finished_at, input_root, output_dir, imported, skipped, failed
         FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedRaw, doneRaw string
		if err := rows.Scan(&run.ID, &startedRaw, &doneRaw, &run.InputRoot, &run.OutputDir,
			&run.Imported, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedRaw)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, doneRaw)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Results returns the per-stock rows of a run in insertion order.
func (s *Store) Results(ctx context.Context, runID string) ([]StockResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, source_dir, status, output_path, sha256, reason
         FROM stock_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []StockResult
	for rows.Next() {
		var r StockResult
		var outputPath, sum, reason sql.NullString
		if err := rows.Scan(&r.Slug, &r.SourceDir, &r.Status, &outputPath, &sum, &reason); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.OutputPath = outputPath.String
		r.SHA256 = sum.String
		r.Reason = reason.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
