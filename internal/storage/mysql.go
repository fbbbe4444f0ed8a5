package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"simtest/internal/domain"
)

const createRunsTable = "CREATE TABLE IF NOT EXISTS `simtest_runs` (" +
	"`id` BIGINT AUTO_INCREMENT PRIMARY KEY," +
	"`run_at` DATETIME NOT NULL," +
	"`circuit` VARCHAR(255) NOT NULL," +
	"`test_name` VARCHAR(255) NOT NULL," +
	"`status` VARCHAR(16) NOT NULL," +
	"`output_ok` BOOLEAN NOT NULL," +
	"`speed` BIGINT NULL," +
	"`speed_limit` BIGINT NULL," +
	"INDEX `idx_test_name` (`test_name`, `run_at`))"

const insertRun = "INSERT INTO `simtest_runs` " +
	"(`run_at`, `circuit`, `test_name`, `status`, `output_ok`, `speed`, `speed_limit`) " +
	"VALUES (?, ?, ?, ?, ?, ?, ?)"

// HistoryStore appends per-case outcomes to a MySQL table so speed can be tracked across runs
type HistoryStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenHistory connects to the MySQL server described by dsn
func OpenHistory(ctx context.Context, dsn string) (*HistoryStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	return NewHistoryStore(db), nil
}

// NewHistoryStore wraps an open database handle
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Record inserts one row per case of the report in a single transaction
func (h *HistoryStore) Record(ctx context.Context, report *domain.RunReport) error {
	if _, err := h.db.ExecContext(ctx, createRunsTable); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRun)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	runAt := h.now().UTC()
	for _, c := range report.Cases {
		if _, err := stmt.ExecContext(ctx, historyRow(runAt, report.Meta.Circuit, c)...); err != nil {
			return fmt.Errorf("record %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

func historyRow(runAt time.Time, circuit string, c domain.CaseRecord) []any {
	var speed, limit sql.NullInt64
	if c.ActualSpeed != nil {
		speed = sql.NullInt64{Int64: *c.ActualSpeed, Valid: true}
	}
	if c.SpeedLimit != nil {
		limit = sql.NullInt64{Int64: *c.SpeedLimit, Valid: true}
	}
	return []any{runAt, circuit, c.Name, string(c.Status), c.OutputOK, speed, limit}
}
