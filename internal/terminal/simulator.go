package terminal

import (
	"context"
	"time"

	"mt5ops/internal/domain"
)

// Compile-time interface check.
var _ Terminal = (*Simulator)(nil)

// Simulator implements Terminal in memory for tests and dry runs. It serves
// seeded symbols, quotes, and account state without an external process, and
// can be scripted to reject orders with a chosen retcode.
type Simulator struct {
	account  domain.AccountSnapshot
	status   domain.TerminalStatus
	symbols  map[string]domain.SymbolInfo
	quotes   map[string]domain.Quote
	selected map[string]bool

	// NextRetcode is returned by the next SubmitOrder call. Zero means
	// RetcodeDone.
	NextRetcode int

	// Submitted collects every accepted or rejected plan, in order.
	Submitted []domain.OrderPlan

	connected  bool
	nextTicket int64
}

// NewSimulator creates a Simulator with a funded demo account, a connected
// terminal status, and no symbols. Seed symbols and quotes with SetSymbol
// and SetQuote.
func NewSimulator() *Simulator {
	return &Simulator{
		account: domain.AccountSnapshot{
			Login:         5000123,
			Server:        "Simulator-Demo",
			Name:          "Simulated Account",
			Company:       "mt5ops",
			Currency:      "USD",
			Balance:       10000,
			Equity:        10000,
			FreeMargin:    10000,
			MarginLevel:   0,
			Leverage:      100,
			TradeAllowed:  true,
			ExpertAllowed: true,
		},
		status: domain.TerminalStatus{
			Build:        4620,
			Path:         "simulator",
			Connected:    true,
			TradeAllowed: true,
			DLLsAllowed:  true,
		},
		symbols:    make(map[string]domain.SymbolInfo),
		quotes:     make(map[string]domain.Quote),
		selected:   make(map[string]bool),
		nextTicket: 1000,
	}
}

// SetSymbol seeds symbol metadata.
func (s *Simulator) SetSymbol(info domain.SymbolInfo) {
	s.symbols[info.Name] = info
}

// SetQuote seeds the current tick for a symbol.
func (s *Simulator) SetQuote(q domain.Quote) {
	s.quotes[q.Symbol] = q
}

// SetAccount replaces the simulated account state.
func (s *Simulator) SetAccount(a domain.AccountSnapshot) {
	s.account = a
}

// SetStatus replaces the simulated terminal status.
func (s *Simulator) SetStatus(st domain.TerminalStatus) {
	s.status = st
}

// Name returns "simulator".
func (s *Simulator) Name() string { return "simulator" }

// Connect marks the handle open.
func (s *Simulator) Connect(_ context.Context) error {
	if !s.status.Connected {
		return ErrConnectionFailed
	}
	s.connected = true
	return nil
}

// Close marks the handle closed.
func (s *Simulator) Close() error {
	s.connected = false
	return nil
}

// TerminalStatus returns the simulated terminal status.
func (s *Simulator) TerminalStatus(_ context.Context) (*domain.TerminalStatus, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	st := s.status
	return &st, nil
}

// AccountSnapshot returns the simulated account state.
func (s *Simulator) AccountSnapshot(_ context.Context) (*domain.AccountSnapshot, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	a := s.account
	return &a, nil
}

// SymbolInfo returns seeded metadata, or found=false for unseeded symbols.
func (s *Simulator) SymbolInfo(_ context.Context, symbol string) (*domain.SymbolInfo, bool, error) {
	if !s.connected {
		return nil, false, ErrNotConnected
	}
	info, ok := s.symbols[symbol]
	if !ok {
		return nil, false, nil
	}
	return &info, true, nil
}

// SelectSymbol marks a seeded symbol visible. Selecting an unseeded symbol
// is an error, matching a terminal that cannot add an unknown symbol to
// Market Watch.
func (s *Simulator) SelectSymbol(_ context.Context, symbol string) error {
	if !s.connected {
		return ErrNotConnected
	}
	info, ok := s.symbols[symbol]
	if !ok {
		return &OrderRejectedError{Retcode: RetcodeReject, Reason: RejectRejected, Comment: "unknown symbol " + symbol}
	}
	info.Visible = true
	s.symbols[symbol] = info
	s.selected[symbol] = true
	return nil
}

// Quote returns the seeded tick, or found=false when none is seeded.
func (s *Simulator) Quote(_ context.Context, symbol string) (*domain.Quote, bool, error) {
	if !s.connected {
		return nil, false, ErrNotConnected
	}
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, false, nil
	}
	return &q, true, nil
}

// SubmitOrder records the plan and fills it at the plan price, unless
// NextRetcode scripts a rejection.
func (s *Simulator) SubmitOrder(_ context.Context, plan *domain.OrderPlan) (*domain.OrderAck, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	s.Submitted = append(s.Submitted, *plan)

	retcode := s.NextRetcode
	s.NextRetcode = 0
	if retcode == 0 {
		retcode = RetcodeDone
	}

	if retcode != RetcodeDone {
		ack := &domain.OrderAck{Retcode: retcode, Comment: "simulated rejection", Time: time.Now()}
		return ack, &OrderRejectedError{
			Retcode: retcode,
			Reason:  ClassifyRetcode(retcode),
			Comment: ack.Comment,
		}
	}

	s.nextTicket++
	return &domain.OrderAck{
		Retcode:      RetcodeDone,
		Order:        s.nextTicket,
		Deal:         s.nextTicket,
		FilledVolume: plan.Volume,
		FilledPrice:  plan.Price,
		Time:         time.Now(),
	}, nil
}
