// One-shot tool: print the account summary with a trading readiness verdict
// and persist a snapshot row for the history tool.
//
// Usage:
//
//	go run cmd/mt5-account/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mt5ops/internal/config"
	"mt5ops/internal/report"
	"mt5ops/internal/store"
	"mt5ops/internal/terminal"
	"mt5ops/internal/util"
)

func main() {
	cfgStore, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := cfgStore.Typed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read config: %v\n", err)
		os.Exit(1)
	}
	logger := util.NewLogger(cfg.Logging.Level)

	term := terminal.NewBridgeTerminal(cfg.Terminal.BridgeAddresses,
		time.Duration(cfg.Terminal.ConnectionTimeout)*time.Second, logger)
	ctx := context.Background()

	if err := term.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	account, err := term.AccountSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "account info: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	report.AccountSummary(os.Stdout, account, now)
	report.PrintReadiness(os.Stdout, account)

	dataDir := os.Getenv("MT5OPS_DATA")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create data dir: %v\n", err)
		os.Exit(1)
	}
	db, err := store.NewSQLiteStore(filepath.Join(dataDir, "snapshots.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.SaveSnapshot(ctx, now, account); err != nil {
		fmt.Fprintf(os.Stderr, "save snapshot: %v\n", err)
		os.Exit(1)
	}
	logger.Info("snapshot saved", "login", account.Login, "balance", account.Balance)
}
