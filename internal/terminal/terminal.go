// Package terminal defines the Terminal handle and provides implementations
// for talking to a MetaTrader 5 terminal through its local bridge, plus an
// in-memory simulator for tests.
package terminal

import (
	"context"
	"errors"

	"mt5ops/internal/domain"
)

var (
	// ErrNotConnected is returned by gateway calls before Connect or after
	// Close.
	ErrNotConnected = errors.New("terminal: not connected")

	// ErrConnectionFailed is returned by Connect when no bridge address
	// responds with a connected, logged-in terminal.
	ErrConnectionFailed = errors.New("terminal: bridge unreachable or not logged in")
)

// Terminal abstracts the trading terminal's local API: account state, symbol
// metadata, tick quotes, and order submission. It is an explicit handle with
// an open/close lifecycle; there is no hidden shared state, so tests can
// substitute a Simulator.
//
// Lookup methods distinguish absence from failure: a symbol or quote unknown
// to the terminal returns found=false with a nil error, while terminal or
// transport trouble returns a non-nil error.
type Terminal interface {
	// Name returns the implementation identifier (e.g. "bridge", "simulator").
	Name() string

	// Connect establishes the session with the terminal. It must be called
	// before any other gateway method.
	Connect(ctx context.Context) error

	// Close releases the session. The handle cannot be reused afterwards.
	Close() error

	// TerminalStatus returns the state of the terminal process.
	TerminalStatus(ctx context.Context) (*domain.TerminalStatus, error)

	// AccountSnapshot returns the current account state.
	AccountSnapshot(ctx context.Context) (*domain.AccountSnapshot, error)

	// SymbolInfo returns metadata for a symbol, or found=false when the
	// terminal does not know it.
	SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, bool, error)

	// SelectSymbol adds a symbol to the terminal's Market Watch so quotes
	// become available.
	SelectSymbol(ctx context.Context, symbol string) error

	// Quote returns the latest tick for a symbol, or found=false when no
	// tick is available.
	Quote(ctx context.Context, symbol string) (*domain.Quote, bool, error)

	// SubmitOrder sends an order plan to the terminal. A non-success
	// retcode is returned as an *OrderRejectedError alongside the ack.
	SubmitOrder(ctx context.Context, plan *domain.OrderPlan) (*domain.OrderAck, error)
}
