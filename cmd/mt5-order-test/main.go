// One-shot tool: place two sized test orders (a EURUSD buy, then a GBPUSD
// sell) through the bridge and journal each outcome to the order history.
//
// Usage:
//
//	go run cmd/mt5-order-test/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"mt5ops/internal/config"
	"mt5ops/internal/domain"
	"mt5ops/internal/report"
	"mt5ops/internal/sizing"
	"mt5ops/internal/store"
	"mt5ops/internal/terminal"
	"mt5ops/internal/util"
)

const (
	testRiskAmount = 25.0
	testStopPips   = 50
	testDeviation  = 20
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

	fmt.Println("MetaTrader 5 Order Testing")
	fmt.Println(report.Rule('=', 40))

	term := terminal.NewBridgeTerminal(cfg.Terminal.BridgeAddresses,
		time.Duration(cfg.Terminal.ConnectionTimeout)*time.Second, logger)
	ctx := context.Background()

	if err := term.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	dataDir := os.Getenv("MT5OPS_DATA")
	if dataDir == "" {
		dataDir = "data"
	}
	journal := store.NewParquetJournal(dataDir)

	legs := []struct {
		symbol string
		side   domain.Side
	}{
		{"EURUSD", domain.SideBuy},
		{"GBPUSD", domain.SideSell},
	}

	failures := 0
	for i, leg := range legs {
		if i > 0 {
			time.Sleep(2 * time.Second)
		}
		fmt.Printf("\nTesting %s order on %s...\n", strings.ToUpper(string(leg.side)), leg.symbol)
		if err := placeTestOrder(ctx, term, journal, cfg, leg.symbol, leg.side); err != nil {
			fmt.Printf("Order test failed: %v\n", err)
			failures++
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
	fmt.Println("\nOrder testing finished.")
}

func placeTestOrder(ctx context.Context, term terminal.Terminal, journal store.OrderJournal, cfg *config.Config, symbol string, side domain.Side) error {
	info, found, err := term.SymbolInfo(ctx, symbol)
	if err != nil {
		return fmt.Errorf("symbol info %s: %w", symbol, err)
	}
	if !found {
		return fmt.Errorf("symbol %s not found", symbol)
	}
	if !info.Visible {
		if err := term.SelectSymbol(ctx, symbol); err != nil {
			return fmt.Errorf("select %s: %w", symbol, err)
		}
	}

	quote, found, err := term.Quote(ctx, symbol)
	if err != nil {
		return fmt.Errorf("tick %s: %w", symbol, err)
	}
	if !found {
		return fmt.Errorf("no tick data for %s", symbol)
	}

	plan, sized, err := sizing.BuildOrderPlan(info, quote, side,
		testRiskAmount, testStopPips, cfg.Trading.MinRiskReward)
	if err != nil {
		return fmt.Errorf("build plan %s: %w", symbol, err)
	}
	plan.Deviation = testDeviation
	plan.Magic = cfg.Trading.MagicNumber
	plan.Comment = fmt.Sprintf("Test %s order", side)

	report.OrderIntent(os.Stdout, plan, testRiskAmount, sized.Provenance.String())

	ack, err := term.SubmitOrder(ctx, plan)

	rec := store.OrderRecord{
		Timestamp:  time.Now().UnixMilli(),
		Symbol:     plan.Symbol,
		Side:       string(plan.Side),
		Volume:     plan.Volume,
		Price:      plan.Price,
		StopLoss:   plan.StopLoss,
		TakeProfit: plan.TakeProfit,
		RiskAmount: testRiskAmount,
		Sizing:     sized.Provenance.String(),
	}
	if ack != nil {
		rec.Retcode = int32(ack.Retcode)
		rec.OrderTicket = ack.Order
		rec.DealTicket = ack.Deal
		rec.FilledVolume = ack.FilledVolume
		rec.FilledPrice = ack.FilledPrice
		rec.Comment = ack.Comment
	}
	if jerr := journal.AppendOrders(ctx, []store.OrderRecord{rec}); jerr != nil {
		fmt.Fprintf(os.Stderr, "journal append: %v\n", jerr)
	}

	// A rejection is a reported outcome of a successful exchange with the
	// trade server, not a script failure.
	var rej *terminal.OrderRejectedError
	if errors.As(err, &rej) {
		report.OrderRejected(os.Stdout, rej.Retcode, rej.Reason.String(), rej.Comment)
		return nil
	}
	if err != nil {
		return fmt.Errorf("order send %s: %w", symbol, err)
	}
	report.OrderAccepted(os.Stdout, ack)
	return nil
}
