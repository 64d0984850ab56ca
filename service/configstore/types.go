package configstore

import (
	"context"
	"database/sql"
	"time"
)

type service struct {
	db *sql.DB
}

// RunRecord is one persisted engine run.
type RunRecord struct {
	ID            int64
	StartedAt     time.Time
	CompletedAt   time.Time
	Mode          string
	Completed     int
	Failed        int
	TotalSavings  float64
	SchemaVariant string
}

type ConfigStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	RecordRun(ctx context.Context, record RunRecord) (int64, error)
	LastRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}
