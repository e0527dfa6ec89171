// One-shot tool: exercise the settings store. Loads (or bootstraps) the
// configuration, validates it, reads a few values through the dot-path API,
// bumps trading.risk_amount, and prints the saved document.
//
// Usage:
//
//	go run cmd/mt5-config/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"mt5ops/internal/config"
	"mt5ops/internal/report"
)

func main() {
	path := config.Path()
	cfgStore, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration Manager")
	fmt.Println(report.Rule('=', 30))
	if cfgStore.Created {
		fmt.Printf("Created default configuration at %s\n", path)
	}

	if err := cfgStore.Validate(); err != nil {
		fmt.Printf("Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}
	fmt.Println("Configuration is valid.")

	cfg, err := cfgStore.Typed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Risk amount: %v\n", cfgStore.Get("trading.risk_amount", nil))
	fmt.Printf("MACD fast period: %v\n", cfgStore.Get("analysis.macd_fast", nil))
	names := make([]string, 0, len(cfg.Symbols))
	for _, s := range cfg.EnabledSymbols() {
		names = append(names, s.Name)
	}
	fmt.Printf("Enabled symbols: %s\n", strings.Join(names, ", "))

	cfgStore.Set("trading.risk_amount", 75.0)
	fmt.Printf("Updated risk amount: %v\n", cfgStore.Get("trading.risk_amount", nil))
	if err := cfgStore.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "save config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nCurrent configuration:")
	fmt.Println(cfgStore.Document())
}
