package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const timeLayout = time.RFC3339Nano

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// CreateRun records the start of a conversion.
func (s *SQLiteStore) CreateRun(input, destination, dialect string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:          generateID(),
		Input:       input,
		Destination: destination,
		Dialect:     dialect,
		Status:      RunStatusRunning,
		Atomic:      true,
		StartedAt:   now(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("input", input))

	_, err := s.db.Exec(
		`INSERT INTO runs (id, input, destination, dialect, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Destination, run.Dialect, string(run.Status), run.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// CompleteRun marks a run as completed and stores its counters.
func (s *SQLiteStore) CompleteRun(id string, summary RunSummary) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, tables = ?, row_count = ?, statements = ?, atomic = ?, completed_at = ? WHERE id = ?`,
		string(RunStatusCompleted), summary.Tables, summary.Rows, summary.Statements, summary.Atomic,
		now().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return requireOneRow(res, id)
}

// FailRun marks a run as failed with the given message.
func (s *SQLiteStore) FailRun(id string, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		string(RunStatusFailed), errMsg, now().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("failed to record run failure: %w", err)
	}
	return requireOneRow(res, id)
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

const runColumns = `id, input, destination, dialect, status, tables, row_count, statements, atomic, started_at, completed_at, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run         Run
		status      string
		startedAt   string
		completedAt sql.NullString
		errMsg      sql.NullString
	)
	if err := sc.Scan(&run.ID, &run.Input, &run.Destination, &run.Dialect, &status,
		&run.Tables, &run.Rows, &run.Statements, &run.Atomic,
		&startedAt, &completedAt, &errMsg); err != nil {
		return nil, err
	}

	run.Status = RunStatus(status)
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	run.StartedAt = t

	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid completed_at %q: %w", completedAt.String, err)
		}
		run.CompletedAt = &t
	}
	run.Error = errMsg.String
	return &run, nil
}

func requireOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}
