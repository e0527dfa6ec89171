// Package store persists what the scripts observe: account snapshots in a
// SQLite history database and submitted test orders in a Parquet journal.
package store

import (
	"context"
	"time"

	"mt5ops/internal/domain"
)

// SnapshotRecord is one observed account state with its capture time.
type SnapshotRecord struct {
	TakenAt time.Time
	Account domain.AccountSnapshot
}

// SnapshotStore persists and retrieves account snapshot history.
type SnapshotStore interface {
	// SaveSnapshot appends an account snapshot taken at the given time.
	SaveSnapshot(ctx context.Context, takenAt time.Time, a *domain.AccountSnapshot) error

	// ListSnapshots returns the most recent snapshots, newest first, up to
	// limit.
	ListSnapshots(ctx context.Context, limit int) ([]SnapshotRecord, error)
}

// OrderRecord is one submitted test order with its outcome.
type OrderRecord struct {
	Timestamp    int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Symbol       string  `parquet:"symbol"`
	Side         string  `parquet:"side"`
	Volume       float64 `parquet:"volume"`
	Price        float64 `parquet:"price"`
	StopLoss     float64 `parquet:"sl"`
	TakeProfit   float64 `parquet:"tp"`
	RiskAmount   float64 `parquet:"risk_amount"`
	Sizing       string  `parquet:"sizing"`
	Retcode      int32   `parquet:"retcode"`
	OrderTicket  int64   `parquet:"order_ticket"`
	DealTicket   int64   `parquet:"deal_ticket"`
	FilledVolume float64 `parquet:"filled_volume"`
	FilledPrice  float64 `parquet:"filled_price"`
	Comment      string  `parquet:"comment"`
}

// OrderJournal persists and retrieves submitted order records by day.
type OrderJournal interface {
	// AppendOrders adds records to the journal for their respective days.
	AppendOrders(ctx context.Context, records []OrderRecord) error

	// ReadOrders returns all records journalled on the given day, in
	// submission order.
	ReadOrders(ctx context.Context, day time.Time) ([]OrderRecord, error)
}
