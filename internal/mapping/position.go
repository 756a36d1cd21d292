package mapping

import (
	"tradelink/internal/broker"
	"tradelink/internal/domain"
	"tradelink/internal/util"
)

// MapPosition maps one broker position record to the canonical position
// schema. Quantity is truncated to an integer; P&L figures keep their
// float precision.
func MapPosition(p broker.Position) domain.Position {
	return domain.Position{
		Symbol:       p.Symbol,
		Exchange:     domain.DefaultExchange,
		Quantity:     util.Int(p.Qty, 0),
		Product:      domain.ProductCNC,
		AveragePrice: util.Float(p.AvgEntryPrice, 0),
		PNL:          util.Float(p.UnrealizedPL, 0),
		DayChange:    util.Float(p.UnrealizedIntradayPL, 0),
		MarketValue:  util.Float(p.MarketValue, 0),
		Side:         p.Side,
	}
}

// MapPositions maps a batch of broker positions, filtering out zero-
// quantity entries.
func MapPositions(positions []broker.Position) []domain.Position {
	mapped := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		if util.Float(p.Qty, 0) == 0 {
			continue
		}
		mapped = append(mapped, MapPosition(p))
	}
	return mapped
}

// MapHolding maps one broker position to the portfolio view, deriving the
// current per-share price from market value and the intraday percentage
// change from the broker's fractional figure.
func MapHolding(p broker.Position) domain.Holding {
	qty := util.Float(p.Qty, 0)
	marketValue := util.Float(p.MarketValue, 0)

	currentPrice := 0.0
	if qty != 0 {
		currentPrice = marketValue / abs(qty)
	}

	return domain.Holding{
		Symbol:           p.Symbol,
		Exchange:         domain.DefaultExchange,
		Quantity:         int(qty),
		AveragePrice:     util.Float(p.AvgEntryPrice, 0),
		CurrentPrice:     currentPrice,
		PNL:              util.Float(p.UnrealizedPL, 0),
		DayChange:        util.Float(p.UnrealizedIntradayPL, 0),
		DayChangePercent: util.Float(p.UnrealizedIntradayPLPC, 0) * 100,
		MarketValue:      marketValue,
	}
}

// MapHoldings maps a batch of broker positions to the portfolio view,
// skipping zero-quantity positions.
func MapHoldings(positions []broker.Position) []domain.Holding {
	holdings := make([]domain.Holding, 0, len(positions))
	for _, p := range positions {
		if util.Float(p.Qty, 0) == 0 {
			continue
		}
		holdings = append(holdings, MapHolding(p))
	}
	return holdings
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
