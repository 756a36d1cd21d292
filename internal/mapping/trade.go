package mapping

import (
	"strings"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
	"tradelink/internal/util"
)

// MapTrade maps one broker filled-order record to the canonical trade
// schema.
//
// The broker populates different field subsets depending on order type and
// lifecycle state, so quantity and price are recovered by scanning ordered
// candidate lists and accepting the first strictly positive value. A
// reported zero does not satisfy a candidate; the scan continues.
func MapTrade(o broker.Order) domain.Trade {
	quantity := extractQuantity(o)
	price := extractPrice(o, quantity)

	// Trade value only when both factors are known; never inferred.
	tradeValue := 0.0
	if quantity > 0 && price > 0 {
		tradeValue = float64(quantity) * price
	}

	side := util.FirstNonEmpty(o.Side, o.TransactionType, o.Action)

	// Execution time preferred over submission time.
	timestamp := util.FirstNonEmpty(o.FilledAt, o.UpdatedAt, o.SubmittedAt, o.CreatedAt)

	// Alpaca has no separate trade identifier; the order id doubles as the
	// trade id unless the record carries explicit ones.
	tradeID := util.FirstNonEmpty(o.TradeID, o.ID)
	orderID := util.FirstNonEmpty(o.OrderID, o.ID)

	return domain.Trade{
		TradeID:      tradeID,
		OrderID:      orderID,
		Symbol:       o.Symbol,
		Exchange:     domain.DefaultExchange,
		Action:       strings.ToUpper(side),
		Quantity:     quantity,
		AveragePrice: price,
		TradeValue:   tradeValue,
		Product:      domain.ProductCNC,
		OrderType:    strings.ToUpper(o.Type),
		Timestamp:    timestamp,
		Status:       domain.StatusComplete,
	}
}

// extractQuantity scans the quantity candidates in preference order and
// returns the first strictly positive integer, or 0.
func extractQuantity(o broker.Order) int {
	for _, candidate := range []string{o.FilledQty, o.Qty, o.Quantity} {
		if n, ok := util.PositiveInt(candidate); ok {
			return n
		}
	}
	return 0
}

// extractPrice scans the price candidates in preference order and returns
// the first strictly positive value. Stop and trail prices are a last
// resort, consulted only when the trade has a known quantity but none of
// the fill-price fields carried a value.
func extractPrice(o broker.Order, quantity int) float64 {
	for _, candidate := range []string{o.FilledAvgPrice, o.AvgFillPrice, o.Price, o.LimitPrice} {
		if f, ok := util.PositiveFloat(candidate); ok {
			return f
		}
	}
	if quantity > 0 {
		for _, candidate := range []string{o.StopPrice, o.TrailPrice} {
			if f, ok := util.PositiveFloat(candidate); ok {
				return f
			}
		}
	}
	return 0
}

// MapTrades maps a batch of broker filled orders, dropping any mapped
// trade that lacks both a symbol and an action — a wholly-empty broker
// record that slipped through. Empty input yields empty output.
func MapTrades(orders []broker.Order) []domain.Trade {
	trades := make([]domain.Trade, 0, len(orders))
	for _, o := range orders {
		trade := MapTrade(o)
		if trade.Symbol == "" && trade.Action == "" {
			continue
		}
		trades = append(trades, trade)
	}
	return trades
}
