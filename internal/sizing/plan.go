package sizing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mt5ops/internal/domain"
)

// Levels are the derived prices of an order plan.
type Levels struct {
	Entry      float64
	StopLoss   float64
	TakeProfit float64
}

// DeriveLevels computes entry, stop-loss and take-profit prices for a market
// order. A buy enters at the ask with the stop below and the target above; a
// sell enters at the bid with the stop above and the target below. The
// target distance is rewardRatio times the stop distance.
//
// For yen-quoted symbols the pip count is scaled x100 before the 0.01 pip
// unit is applied, keeping the effective point distance consistent across
// quote precisions.
func DeriveLevels(side domain.Side, symbol string, quote *domain.Quote, stopLossPips, rewardRatio float64) (Levels, error) {
	if side != domain.SideBuy && side != domain.SideSell {
		return Levels{}, fmt.Errorf("%w: got %q", ErrInvalidDirection, side)
	}
	if stopLossPips <= 0 || rewardRatio <= 0 {
		return Levels{}, fmt.Errorf("%w: stopLossPips=%v rewardRatio=%v", ErrInvalidInput, stopLossPips, rewardRatio)
	}

	pips := decimal.NewFromFloat(stopLossPips)
	if domain.YenQuoted(symbol) {
		pips = pips.Mul(decimal.NewFromInt(100))
	}
	distance := pips.Mul(decimal.NewFromFloat(PipUnit(symbol)))
	reward := distance.Mul(decimal.NewFromFloat(rewardRatio))

	var entry decimal.Decimal
	if side == domain.SideBuy {
		entry = decimal.NewFromFloat(quote.Ask)
		return Levels{
			Entry:      entry.InexactFloat64(),
			StopLoss:   entry.Sub(distance).InexactFloat64(),
			TakeProfit: entry.Add(reward).InexactFloat64(),
		}, nil
	}
	entry = decimal.NewFromFloat(quote.Bid)
	return Levels{
		Entry:      entry.InexactFloat64(),
		StopLoss:   entry.Add(distance).InexactFloat64(),
		TakeProfit: entry.Sub(reward).InexactFloat64(),
	}, nil
}

// BuildOrderPlan composes volume computation and level derivation into a
// submittable plan. When the volume cannot be computed (bad inputs or missing
// tick data) the plan falls back to the symbol's minimum volume and the
// returned Result carries the FallbackMin provenance; the fallback is never
// silent. Direction and level errors are still fatal.
func BuildOrderPlan(info *domain.SymbolInfo, quote *domain.Quote, side domain.Side, riskAmount, stopLossPips, rewardRatio float64) (*domain.OrderPlan, Result, error) {
	levels, err := DeriveLevels(side, info.Name, quote, stopLossPips, rewardRatio)
	if err != nil {
		return nil, Result{}, err
	}

	res, err := ComputeVolume(info, riskAmount, stopLossPips)
	if err != nil {
		res = Result{Volume: fallbackVolume(info), Provenance: FallbackMin}
	}

	return &domain.OrderPlan{
		Symbol:     info.Name,
		Side:       side,
		Volume:     res.Volume,
		Price:      levels.Entry,
		StopLoss:   levels.StopLoss,
		TakeProfit: levels.TakeProfit,
	}, res, nil
}

// fallbackVolume is the conservative default when sizing fails: the symbol
// minimum, or one micro lot when even that is unknown.
func fallbackVolume(info *domain.SymbolInfo) float64 {
	if info != nil && info.VolumeMin > 0 {
		return info.VolumeMin
	}
	return 0.01
}
