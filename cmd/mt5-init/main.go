// One-shot tool: bring up the terminal bridge connection and verify the
// account login.
//
// Usage:
//
//	go run cmd/mt5-init/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mt5ops/internal/config"
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
		fmt.Printf("Failed to initialize terminal connection: %v\n", err)
		fmt.Println("\nTroubleshooting tips:")
		fmt.Println("1. Ensure the MetaTrader 5 terminal is installed and running")
		fmt.Println("2. Check that the bridge is listening on a configured address")
		fmt.Println("3. Verify your trading account credentials")
		fmt.Println("4. Check that algorithmic trading is enabled in the terminal")
		os.Exit(1)
	}
	defer term.Close()

	account, err := term.AccountSnapshot(ctx)
	if err != nil {
		fmt.Printf("Failed to get account information: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Terminal connection initialized successfully")
	fmt.Printf("Bridge: %s\n", term.BaseURL())
	fmt.Printf("Connected to account: %d\n", account.Login)
	fmt.Printf("Server: %s\n", account.Server)
	fmt.Printf("Connection time: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("\nInitialization complete. You can now run the trading scripts.")
}
