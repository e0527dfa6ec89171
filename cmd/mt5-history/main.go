// One-shot tool: show the most recent account snapshots and a day's order
// journal.
//
// Usage:
//
//	go run cmd/mt5-history/main.go [2026-08-30]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mt5ops/internal/report"
	"mt5ops/internal/store"
)

const snapshotLimit = 10

func main() {
	day := time.Now().UTC()
	if len(os.Args) > 1 {
		d, err := time.Parse("2006-01-02", os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "usage: mt5-history [DATE]")
			os.Exit(1)
		}
		day = d
	}

	dataDir := os.Getenv("MT5OPS_DATA")
	if dataDir == "" {
		dataDir = "data"
	}

	db, err := store.NewSQLiteStore(filepath.Join(dataDir, "snapshots.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	snaps, err := db.ListSnapshots(ctx, snapshotLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list snapshots: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent account snapshots:")
	fmt.Println(report.Rule('-', 72))
	if len(snaps) == 0 {
		fmt.Println("(none)")
	}
	for _, s := range snaps {
		fmt.Printf("%-20s login=%d balance=%s equity=%s margin level=%s\n",
			s.TakenAt.Format("2006-01-02 15:04:05"), s.Account.Login,
			report.Money(s.Account.Balance, s.Account.Currency),
			report.Money(s.Account.Equity, s.Account.Currency),
			report.Percent(s.Account.MarginLevel))
	}

	journal := store.NewParquetJournal(dataDir)
	orders, err := journal.ReadOrders(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nOrders on %s:\n", day.Format("2006-01-02"))
	fmt.Println(report.Rule('-', 72))
	if len(orders) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, o := range orders {
		fmt.Printf("%-9s %-8s %-5s vol=%.2f price=%v sl=%v tp=%v retcode=%d ticket=%d sizing=%s\n",
			time.UnixMilli(o.Timestamp).UTC().Format("15:04:05"),
			o.Symbol, o.Side, o.Volume, o.Price, o.StopLoss, o.TakeProfit,
			o.Retcode, o.OrderTicket, o.Sizing)
	}
}
