package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kitchen/internal/modules/ledger/domain"
	ledgerout "kitchen/internal/modules/ledger/port/out"

	_ "modernc.org/sqlite"
)

// Fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteWorkLog struct {
	db *sql.DB
}

func NewSQLiteWorkLog(dbPath string) (*SQLiteWorkLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	workLog := &SQLiteWorkLog{db: db}
	if err := workLog.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return workLog, nil
}

var _ ledgerout.WorkLog = (*SQLiteWorkLog)(nil)

func (s *SQLiteWorkLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS work_log (
  id TEXT PRIMARY KEY,
  stage_id TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT '',
  started_at TEXT NOT NULL,
  stopped_at TEXT NOT NULL,
  hours REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS work_log_stage_stopped ON work_log (stage_id, stopped_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create work_log table: %w", err)
	}
	return nil
}

func (s *SQLiteWorkLog) Close() error {
	return s.db.Close()
}

func (s *SQLiteWorkLog) Append(ctx context.Context, entry domain.WorkEntry) error {
	const stmt = `
INSERT INTO work_log (id, stage_id, author, started_at, stopped_at, hours)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.StageID,
		entry.Author,
		entry.StartedAt.UTC().Format(timeLayout),
		entry.StoppedAt.UTC().Format(timeLayout),
		entry.Hours,
	)
	if err != nil {
		return fmt.Errorf("insert work entry: %w", err)
	}
	return nil
}

// List returns entries newest first. A non-positive limit returns all.
func (s *SQLiteWorkLog) List(ctx context.Context, query ledgerout.WorkLogQuery) ([]domain.WorkEntry, error) {
	stmt := `SELECT id, stage_id, author, started_at, stopped_at, hours FROM work_log`
	args := []any{}
	if query.StageID != "" {
		stmt += ` WHERE stage_id = ?`
		args = append(args, query.StageID)
	}
	stmt += ` ORDER BY stopped_at DESC`
	if query.Limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query work log: %w", err)
	}
	defer rows.Close()

	out := []domain.WorkEntry{}
	for rows.Next() {
		var entry domain.WorkEntry
		var startedAt, stoppedAt string
		if err := rows.Scan(&entry.ID, &entry.StageID, &entry.Author, &startedAt, &stoppedAt, &entry.Hours); err != nil {
			return nil, fmt.Errorf("scan work entry: %w", err)
		}
		if entry.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("decode started_at %q: %w", startedAt, err)
		}
		if entry.StoppedAt, err = time.Parse(timeLayout, stoppedAt); err != nil {
			return nil, fmt.Errorf("decode stopped_at %q: %w", stoppedAt, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work log: %w", err)
	}
	return out, nil
}
