// Long-running tool: stream live quotes for the enabled symbols to the
// console until interrupted.
//
// Usage:
//
//	go run cmd/mt5-watch/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mt5ops/internal/config"
	"mt5ops/internal/domain"
	"mt5ops/internal/report"
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

	var symbols []string
	for _, s := range cfg.EnabledSymbols() {
		symbols = append(symbols, s.Name)
	}
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "no enabled symbols in configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := terminal.NewBridgeTerminal(cfg.Terminal.BridgeAddresses,
		time.Duration(cfg.Terminal.ConnectionTimeout)*time.Second, logger)
	if err := term.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	// Symbol metadata for rendering; a symbol missing here still streams,
	// it just prints without point scaling.
	infos := make(map[string]*domain.SymbolInfo, len(symbols))
	for _, sym := range symbols {
		if info, found, err := term.SymbolInfo(ctx, sym); err == nil && found {
			infos[sym] = info
		}
	}

	stream, err := terminal.OpenQuoteStream(ctx, term.BaseURL(), symbols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open stream: %v\n", err)
		os.Exit(1)
	}
	defer stream.Close()

	logger.Info("streaming quotes", "symbols", strings.Join(symbols, ","))
	report.MarketTableHeader(os.Stdout)

	for q := range stream.Quotes() {
		if info, ok := infos[q.Symbol]; ok {
			report.MarketRow(os.Stdout, q.Symbol, &q, info.Point, info.Digits)
			continue
		}
		fmt.Printf("%-10s %-10v %-10v %-10s %-20s\n",
			q.Symbol, q.Bid, q.Ask, "?", q.Time.Format("15:04:05"))
	}

	if err := stream.Err(); err != nil {
		logger.Error("stream closed", "error", err)
		os.Exit(1)
	}
	logger.Info("stream closed")
}
