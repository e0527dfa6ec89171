// Package sizing converts a risk budget and a stop distance into a tradable
// volume and a set of protective price levels. All functions are pure; the
// caller supplies the symbol metadata and quote snapshots.
package sizing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"mt5ops/internal/domain"
)

var (
	// ErrInvalidInput marks a non-positive risk amount, stop distance, or
	// reward ratio.
	ErrInvalidInput = errors.New("sizing: invalid input")

	// ErrMissingSymbolData marks symbol metadata with a zero tick size, tick
	// value, or volume step. Volume cannot be computed from it.
	ErrMissingSymbolData = errors.New("sizing: symbol tick data unavailable")

	// ErrInvalidDirection marks an order side other than buy or sell.
	ErrInvalidDirection = errors.New("sizing: direction must be buy or sell")
)

// Pip units by quote precision class.
const (
	PipUnitStandard = 0.0001
	PipUnitYen      = 0.01
)

// PipUnit returns the conventional pip size for a symbol: 0.01 for
// yen-quoted pairs (JPY suffix), 0.0001 otherwise.
func PipUnit(symbol string) float64 {
	if domain.YenQuoted(symbol) {
		return PipUnitYen
	}
	return PipUnitStandard
}

// Provenance records how a volume was arrived at. Anything other than Exact
// is degraded sizing and must be surfaced to the operator.
type Provenance int

const (
	// Exact: the risk-derived volume fit within the symbol bounds.
	Exact Provenance = iota
	// ClampedMin: the risk-derived volume was below the symbol minimum.
	ClampedMin
	// ClampedMax: the risk-derived volume exceeded the symbol maximum.
	ClampedMax
	// FallbackMin: sizing failed entirely; the symbol minimum was used.
	FallbackMin
)

func (p Provenance) String() string {
	switch p {
	case Exact:
		return "exact"
	case ClampedMin:
		return "clamped-to-minimum"
	case ClampedMax:
		return "clamped-to-maximum"
	case FallbackMin:
		return "fallback-minimum"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// Degraded reports whether the volume deviates from the exact risk-derived
// size.
func (p Provenance) Degraded() bool { return p != Exact }

// Result is a computed volume together with its provenance, so callers can
// tell an exact size from a clamped or fallback one.
type Result struct {
	Volume     float64
	Provenance Provenance
}

// ComputeVolume derives a tradable volume from a risk budget and a stop
// distance:
//
//	pipValue = tickValue * pipUnit/tickSize
//	raw      = riskAmount / (stopLossPips * pipValue)
//
// The raw volume is snapped to the nearest multiple of the symbol's volume
// step (ties round half-up, matching a plain round of raw/step) and then
// clamped into [VolumeMin, VolumeMax]. A clamped result is not an error; it
// is reported through Result.Provenance.
func ComputeVolume(info *domain.SymbolInfo, riskAmount, stopLossPips float64) (Result, error) {
	if riskAmount <= 0 || stopLossPips <= 0 {
		return Result{}, fmt.Errorf("%w: risk=%v stopLossPips=%v", ErrInvalidInput, riskAmount, stopLossPips)
	}
	if info == nil || info.TickSize == 0 || info.TickValue == 0 || info.VolumeStep == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingSymbolData, symbolName(info))
	}

	tickValue := decimal.NewFromFloat(info.TickValue)
	tickSize := decimal.NewFromFloat(info.TickSize)
	pipUnit := decimal.NewFromFloat(PipUnit(info.Name))

	pipValue := tickValue.Mul(pipUnit.Div(tickSize))
	if pipValue.IsZero() {
		return Result{}, fmt.Errorf("%w: %s has zero pip value", ErrMissingSymbolData, info.Name)
	}

	risk := decimal.NewFromFloat(riskAmount)
	pips := decimal.NewFromFloat(stopLossPips)
	raw := risk.Div(pips.Mul(pipValue))

	// Snap to the volume step. DivRound rounds half away from zero, which is
	// round-half-up for the positive volumes handled here.
	step := decimal.NewFromFloat(info.VolumeStep)
	volume := raw.DivRound(step, 0).Mul(step)

	min := decimal.NewFromFloat(info.VolumeMin)
	max := decimal.NewFromFloat(info.VolumeMax)
	switch {
	case volume.LessThan(min):
		return Result{Volume: info.VolumeMin, Provenance: ClampedMin}, nil
	case volume.GreaterThan(max):
		return Result{Volume: info.VolumeMax, Provenance: ClampedMax}, nil
	default:
		return Result{Volume: volume.InexactFloat64(), Provenance: Exact}, nil
	}
}

func symbolName(info *domain.SymbolInfo) string {
	if info == nil {
		return "<nil symbol>"
	}
	return info.Name
}
