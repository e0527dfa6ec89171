// Package domain defines the value types exchanged with the MetaTrader 5
// terminal: symbol metadata, quotes, account state, order plans, and order
// acknowledgements. All types are immutable snapshots of gateway state.
package domain

import (
	"strings"
	"time"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// SymbolInfo is a snapshot of the terminal's metadata for one symbol.
// It is fetched per call and never cached; the terminal owns the truth.
type SymbolInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Digits      int     `json:"digits"`
	Point       float64 `json:"point"`
	TickValue   float64 `json:"trade_tick_value"`
	TickSize    float64 `json:"trade_tick_size"`
	VolumeMin   float64 `json:"volume_min"`
	VolumeMax   float64 `json:"volume_max"`
	VolumeStep  float64 `json:"volume_step"`
	Spread      int     `json:"spread"`
	Visible     bool    `json:"visible"`
}

// YenQuoted reports whether a symbol name is quoted in Japanese yen, which
// changes the pip unit from 0.0001 to 0.01.
func YenQuoted(symbol string) bool {
	return strings.HasSuffix(symbol, "JPY")
}

// YenQuoted reports whether the symbol is quoted in Japanese yen.
func (s *SymbolInfo) YenQuoted() bool {
	return YenQuoted(s.Name)
}

// Quote is a single tick for a symbol. It expires instantly: the next call
// to the terminal may return different prices.
type Quote struct {
	Symbol string    `json:"symbol"`
	Bid    float64   `json:"bid"`
	Ask    float64   `json:"ask"`
	Last   float64   `json:"last,omitempty"`
	Volume int64     `json:"volume,omitempty"`
	Time   time.Time `json:"time"`
}

// SpreadPoints returns the bid/ask spread expressed in points of the given
// symbol point size, or 0 when the point size is unknown.
func (q *Quote) SpreadPoints(point float64) float64 {
	if point == 0 {
		return 0
	}
	return (q.Ask - q.Bid) / point
}

// AccountSnapshot is a read-only projection of the terminal's account state.
type AccountSnapshot struct {
	Login         int64   `json:"login"`
	Server        string  `json:"server"`
	Name          string  `json:"name"`
	Company       string  `json:"company"`
	Currency      string  `json:"currency"`
	Balance       float64 `json:"balance"`
	Equity        float64 `json:"equity"`
	Profit        float64 `json:"profit"`
	Margin        float64 `json:"margin"`
	FreeMargin    float64 `json:"margin_free"`
	MarginLevel   float64 `json:"margin_level"`
	Leverage      int64   `json:"leverage"`
	TradeAllowed  bool    `json:"trade_allowed"`
	ExpertAllowed bool    `json:"trade_expert"`
}

// TerminalStatus describes the terminal process itself.
type TerminalStatus struct {
	Build        int    `json:"build"`
	Path         string `json:"path"`
	Connected    bool   `json:"connected"`
	TradeAllowed bool   `json:"trade_allowed"`
	DLLsAllowed  bool   `json:"dlls_allowed"`
}

// OrderPlan is a fully derived market order: direction, volume, entry price,
// and protective levels. It is consumed exactly once by submission.
type OrderPlan struct {
	Symbol     string  `json:"symbol"`
	Side       Side    `json:"side"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	StopLoss   float64 `json:"sl"`
	TakeProfit float64 `json:"tp"`
	Deviation  int     `json:"deviation"`
	Magic      int     `json:"magic"`
	Comment    string  `json:"comment,omitempty"`
}

// OrderAck is the terminal's acknowledgement of a submitted order.
type OrderAck struct {
	Retcode      int       `json:"retcode"`
	Order        int64     `json:"order"`
	Deal         int64     `json:"deal"`
	FilledVolume float64   `json:"volume"`
	FilledPrice  float64   `json:"price"`
	Comment      string    `json:"comment,omitempty"`
	Time         time.Time `json:"time"`
}
