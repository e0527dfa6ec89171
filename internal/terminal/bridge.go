package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"mt5ops/internal/domain"
)

// Compile-time interface check.
var _ Terminal = (*BridgeTerminal)(nil)

// BridgeTerminal implements Terminal over the MT5 bridge's local HTTP API.
// Several candidate bridge addresses can be configured; Connect tries them
// in order and pins the first one that reports a connected, logged-in
// terminal. Calls block until the terminal responds or the client timeout
// expires; there is no retry on failure.
type BridgeTerminal struct {
	addrs     []string
	client    *resty.Client
	log       *slog.Logger
	connected bool
}

// NewBridgeTerminal creates a BridgeTerminal for the given candidate bridge
// base URLs (e.g. "http://127.0.0.1:6280"). The timeout bounds every
// request/response exchange.
func NewBridgeTerminal(addrs []string, timeout time.Duration, log *slog.Logger) *BridgeTerminal {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if log == nil {
		log = slog.Default()
	}
	return &BridgeTerminal{
		addrs:  addrs,
		client: client,
		log:    log.With("terminal", "bridge"),
	}
}

// Name returns "bridge".
func (t *BridgeTerminal) Name() string { return "bridge" }

// Connect probes the candidate bridge addresses in order and pins the first
// one whose terminal is connected to its trade server and has a reachable
// account. No address succeeding is an ErrConnectionFailed.
func (t *BridgeTerminal) Connect(ctx context.Context) error {
	for _, addr := range t.addrs {
		t.client.SetBaseURL(addr)

		var status domain.TerminalStatus
		resp, err := t.client.R().SetContext(ctx).SetResult(&status).Get("/terminal")
		if err != nil || resp.IsError() {
			t.log.Debug("bridge probe failed", "addr", addr, "err", err)
			continue
		}
		if !status.Connected {
			t.log.Warn("terminal reachable but not connected to trade server", "addr", addr)
			continue
		}

		var account domain.AccountSnapshot
		resp, err = t.client.R().SetContext(ctx).SetResult(&account).Get("/account")
		if err != nil || resp.IsError() || account.Login == 0 {
			t.log.Warn("terminal connected but account unavailable", "addr", addr)
			continue
		}

		t.connected = true
		t.log.Info("connected to terminal bridge",
			"addr", addr, "build", status.Build, "login", account.Login, "server", account.Server)
		return nil
	}
	return fmt.Errorf("%w: tried %d address(es)", ErrConnectionFailed, len(t.addrs))
}

// Close ends the session. The terminal process itself keeps running.
func (t *BridgeTerminal) Close() error {
	t.connected = false
	return nil
}

// TerminalStatus returns the state of the terminal process.
func (t *BridgeTerminal) TerminalStatus(ctx context.Context) (*domain.TerminalStatus, error) {
	if !t.connected {
		return nil, ErrNotConnected
	}
	var status domain.TerminalStatus
	if err := t.get(ctx, "/terminal", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// AccountSnapshot returns the current account state.
func (t *BridgeTerminal) AccountSnapshot(ctx context.Context) (*domain.AccountSnapshot, error) {
	if !t.connected {
		return nil, ErrNotConnected
	}
	var account domain.AccountSnapshot
	if err := t.get(ctx, "/account", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SymbolInfo returns metadata for symbol. An unknown symbol is found=false,
// not an error.
func (t *BridgeTerminal) SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, bool, error) {
	if !t.connected {
		return nil, false, ErrNotConnected
	}
	var info domain.SymbolInfo
	resp, err := t.client.R().SetContext(ctx).SetResult(&info).
		Get("/symbols/" + url.PathEscape(symbol))
	if err != nil {
		return nil, false, fmt.Errorf("terminal: GET /symbols/%s: %w", symbol, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.IsError() {
		return nil, false, fmt.Errorf("terminal: GET /symbols/%s: bridge returned %s", symbol, resp.Status())
	}
	return &info, true, nil
}

// SelectSymbol asks the terminal to add symbol to Market Watch.
func (t *BridgeTerminal) SelectSymbol(ctx context.Context, symbol string) error {
	if !t.connected {
		return ErrNotConnected
	}
	resp, err := t.client.R().SetContext(ctx).
		Post("/symbols/" + url.PathEscape(symbol) + "/select")
	if err != nil {
		return fmt.Errorf("terminal: select %s: %w", symbol, err)
	}
	if resp.IsError() {
		return fmt.Errorf("terminal: select %s: bridge returned %s", symbol, resp.Status())
	}
	return nil
}

// Quote returns the latest tick for symbol. No tick available is
// found=false, not an error.
func (t *BridgeTerminal) Quote(ctx context.Context, symbol string) (*domain.Quote, bool, error) {
	if !t.connected {
		return nil, false, ErrNotConnected
	}
	var q domain.Quote
	resp, err := t.client.R().SetContext(ctx).SetResult(&q).
		Get("/symbols/" + url.PathEscape(symbol) + "/tick")
	if err != nil {
		return nil, false, fmt.Errorf("terminal: GET tick %s: %w", symbol, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.IsError() {
		return nil, false, fmt.Errorf("terminal: GET tick %s: bridge returned %s", symbol, resp.Status())
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return &q, true, nil
}

// SubmitOrder sends the plan to the trade server. A non-success retcode is
// returned as an *OrderRejectedError; the ack is returned in both cases so
// callers can report the terminal's comment and fill details.
func (t *BridgeTerminal) SubmitOrder(ctx context.Context, plan *domain.OrderPlan) (*domain.OrderAck, error) {
	if !t.connected {
		return nil, ErrNotConnected
	}
	var ack domain.OrderAck
	resp, err := t.client.R().SetContext(ctx).SetBody(plan).SetResult(&ack).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("terminal: submit order: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("terminal: submit order: bridge returned %s", resp.Status())
	}
	if ack.Retcode != RetcodeDone {
		return &ack, &OrderRejectedError{
			Retcode: ack.Retcode,
			Reason:  ClassifyRetcode(ack.Retcode),
			Comment: ack.Comment,
		}
	}
	return &ack, nil
}

// BaseURL returns the pinned bridge address after a successful Connect.
func (t *BridgeTerminal) BaseURL() string {
	return t.client.BaseURL
}

func (t *BridgeTerminal) get(ctx context.Context, path string, out any) error {
	resp, err := t.client.R().SetContext(ctx).SetResult(out).Get(path)
	if err != nil {
		return fmt.Errorf("terminal: GET %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("terminal: GET %s: bridge returned %s", path, resp.Status())
	}
	return nil
}
