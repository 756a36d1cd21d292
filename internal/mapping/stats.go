package mapping

import "tradelink/internal/domain"

// CalculateOrderStatistics counts canonical orders by status class.
func CalculateOrderStatistics(orders []domain.Order) domain.OrderStats {
	stats := domain.OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusComplete:
			stats.CompletedOrders++
		case domain.StatusPending, domain.StatusOpen:
			stats.PendingOrders++
		case domain.StatusCancelled:
			stats.CancelledOrders++
		}
	}
	return stats
}

// CalculatePortfolioStatistics totals a portfolio: holding value is the sum
// of absolute market values, invested value the sum of average price times
// absolute quantity, and the P&L percentage is taken against invested
// value. An empty portfolio yields all zeros.
func CalculatePortfolioStatistics(holdings []domain.Holding) domain.PortfolioStats {
	stats := domain.PortfolioStats{PositionsCount: len(holdings)}
	for _, h := range holdings {
		stats.TotalHoldingValue += abs(h.MarketValue)
		stats.TotalInvestedValue += h.AveragePrice * absInt(h.Quantity)
		stats.TotalPNL += h.PNL
	}
	if stats.TotalInvestedValue != 0 {
		stats.TotalPNLPercent = stats.TotalPNL / stats.TotalInvestedValue * 100
	}
	return stats
}

func absInt(n int) float64 {
	if n < 0 {
		return float64(-n)
	}
	return float64(n)
}
