package configstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS config (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at     TEXT NOT NULL,
	completed_at   TEXT NOT NULL,
	mode           TEXT NOT NULL,
	completed      INTEGER NOT NULL,
	failed         INTEGER NOT NULL,
	total_savings  REAL NOT NULL,
	schema_variant TEXT NOT NULL
);
`

// ErrNotFound is returned when a config key has never been set.
var ErrNotFound = errors.New("config key not found")

func NewService(path string) (*service, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating config store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing config store schema: %w", err)
	}

	return &service{db: db}, nil
}

func (s *service) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading config key %s: %w", key, err)
	}
	return value, nil
}

func (s *service) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO config (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing config key %s: %w", key, err)
	}
	return nil
}

func (s *service) RecordRun(ctx context.Context, record RunRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, completed_at, mode, completed, failed, total_savings, schema_variant)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.StartedAt.Format(time.RFC3339),
		record.CompletedAt.Format(time.RFC3339),
		record.Mode,
		record.Completed,
		record.Failed,
		record.TotalSavings,
		record.SchemaVariant)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

func (s *service) LastRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, completed_at, mode, completed, failed, total_savings, schema_variant
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var started, completed string
		if err := rows.Scan(&record.ID, &started, &completed, &record.Mode,
			&record.Completed, &record.Failed, &record.TotalSavings, &record.SchemaVariant); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		record.StartedAt, _ = time.Parse(time.RFC3339, started)
		record.CompletedAt, _ = time.Parse(time.RFC3339, completed)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *service) Close() error {
	return s.db.Close()
}
