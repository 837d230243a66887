// Package reportstore keeps a local SQLite history of validation runs.
package reportstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("validation run not found")

// Store is a validation history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create history directory")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "read schema")
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "execute schema")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run with its messages and returns its ID. A run without an
// ID gets a new UUID.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO validation_runs (id, source, started_at, status, error, warning_count, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.StartedAt.UTC().Format(timeLayout), string(run.Status), run.Error, run.Warnings, run.Errors)
	if err != nil {
		return "", errors.Wrapf(err, "insert run %s", run.ID)
	}

	for i, m := range run.Messages {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_messages (run_id, seq, severity, kind, item, message) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, m.Severity, m.Kind, m.Item, m.Text)
		if err != nil {
			return "", errors.Wrapf(err, "insert message %d of run %s", i, run.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit run")
	}
	return run.ID, nil
}

// List returns up to limit runs, newest first, without their messages. A
// limit of zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source, started_at, status, error, warning_count, error_count
		FROM validation_runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// Get returns the run with id, including its messages.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, started_at, status, error, warning_count, error_count
		 FROM validation_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "run %s", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, kind, item, message FROM run_messages WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query messages of run %s", id)
	}
	defer rows.Close()

	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.Severity, &m.Kind, &m.Item, &m.Text); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		run.Messages = append(run.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate messages")
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		startedAt string
		status    string
	)
	if err := sc.Scan(&run.ID, &run.Source, &startedAt, &status, &run.Error, &run.Warnings, &run.Errors); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, errors.Wrap(err, "scan run")
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, errors.Wrapf(err, "parse started_at of run %s", run.ID)
	}
	run.StartedAt, run.Status = t, Status(status)
	return run, nil
}
