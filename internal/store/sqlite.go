package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mt5ops/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ SnapshotStore = (*SQLiteStore)(nil)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS account_snapshots (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at       INTEGER NOT NULL,
	login          INTEGER NOT NULL,
	server         TEXT NOT NULL,
	currency       TEXT NOT NULL,
	balance        REAL NOT NULL,
	equity         REAL NOT NULL,
	profit         REAL NOT NULL,
	margin         REAL NOT NULL,
	free_margin    REAL NOT NULL,
	margin_level   REAL NOT NULL,
	leverage       INTEGER NOT NULL,
	trade_allowed  INTEGER NOT NULL,
	expert_allowed INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON account_snapshots (taken_at);
`

// SQLiteStore implements SnapshotStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", dbPath, err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot appends an account snapshot row.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, takenAt time.Time, a *domain.AccountSnapshot) error {
	const q = `
INSERT INTO account_snapshots
	(taken_at, login, server, currency, balance, equity, profit, margin,
	 free_margin, margin_level, leverage, trade_allowed, expert_allowed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		takenAt.UnixMilli(), a.Login, a.Server, a.Currency,
		a.Balance, a.Equity, a.Profit, a.Margin,
		a.FreeMargin, a.MarginLevel, a.Leverage,
		boolToInt(a.TradeAllowed), boolToInt(a.ExpertAllowed))
	if err != nil {
		return fmt.Errorf("store: inserting snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	const q = `
SELECT taken_at, login, server, currency, balance, equity, profit, margin,
       free_margin, margin_level, leverage, trade_allowed, expert_allowed
FROM account_snapshots
ORDER BY taken_at DESC, id DESC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("store: listing snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var (
			rec           SnapshotRecord
			takenAt       int64
			trade, expert int
		)
		if err := rows.Scan(&takenAt,
			&rec.Account.Login, &rec.Account.Server, &rec.Account.Currency,
			&rec.Account.Balance, &rec.Account.Equity, &rec.Account.Profit,
			&rec.Account.Margin, &rec.Account.FreeMargin, &rec.Account.MarginLevel,
			&rec.Account.Leverage, &trade, &expert); err != nil {
			return nil, fmt.Errorf("store: scanning snapshot: %w", err)
		}
		rec.TakenAt = time.UnixMilli(takenAt)
		rec.Account.TradeAllowed = trade != 0
		rec.Account.ExpertAllowed = expert != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
