package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
)

// Compile-time interface check.
var _ OrderJournal = (*ParquetJournal)(nil)

// ParquetJournal implements OrderJournal using one Parquet file per day.
// Layout: <DataDir>/orders/<YYYY-MM-DD>.parquet
type ParquetJournal struct {
	DataDir string
}

// NewParquetJournal creates a ParquetJournal rooted at the given data
// directory.
func NewParquetJournal(dataDir string) *ParquetJournal {
	return &ParquetJournal{DataDir: dataDir}
}

// AppendOrders adds records to the journal, grouped into their day files.
// Existing records for each day are preserved; the file is rewritten with
// the combined set sorted by timestamp.
func (j *ParquetJournal) AppendOrders(_ context.Context, records []OrderRecord) error {
	if len(records) == 0 {
		return nil
	}

	groups := make(map[string][]OrderRecord)
	for _, r := range records {
		day := time.UnixMilli(r.Timestamp).UTC().Format("2006-01-02")
		groups[day] = append(groups[day], r)
	}

	for day, recs := range groups {
		path := j.dayPath(day)

		existing, _ := readParquetFile[OrderRecord](path)
		combined := append(existing, recs...)
		sort.SliceStable(combined, func(a, b int) bool {
			return combined[a].Timestamp < combined[b].Timestamp
		})

		if err := writeParquetFile(path, combined); err != nil {
			return fmt.Errorf("store: journalling orders for %s: %w", day, err)
		}
	}
	return nil
}

// ReadOrders returns the records journalled on the given day.
func (j *ParquetJournal) ReadOrders(_ context.Context, day time.Time) ([]OrderRecord, error) {
	path := j.dayPath(day.UTC().Format("2006-01-02"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := readParquetFile[OrderRecord](path)
	if err != nil {
		return nil, fmt.Errorf("store: reading journal %s: %w", path, err)
	}
	return records, nil
}

func (j *ParquetJournal) dayPath(day string) string {
	return filepath.Join(j.DataDir, "orders", day+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
