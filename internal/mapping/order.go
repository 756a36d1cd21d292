// Package mapping translates between broker-native Alpaca records and the
// canonical platform schema. Mapping into the canonical schema is total:
// every function in the inbound direction defends against missing or
// malformed fields and degrades to typed defaults rather than failing, so
// read-path callers always receive a well-formed record. The outbound order
// transform (transform.go) validates instead, since silent defaulting on
// the write path would submit a malformed order.
package mapping

import (
	"strings"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
	"tradelink/internal/util"
)

// statusMap classifies the broker's order-status vocabulary into the
// canonical taxonomy. Lookup is case-insensitive; unmapped values pass
// through upper-cased, never as an error.
var statusMap = map[string]string{
	"new":                  domain.StatusPending,
	"pending_new":          domain.StatusPending,
	"pending_cancel":       domain.StatusPending,
	"pending_replace":      domain.StatusPending,
	"partially_filled":     domain.StatusOpen,
	"accepted":             domain.StatusOpen,
	"accepted_for_bidding": domain.StatusOpen,
	"calculated":           domain.StatusOpen,
	"filled":               domain.StatusComplete,
	"done_for_day":         domain.StatusCancelled,
	"canceled":             domain.StatusCancelled,
	"expired":              domain.StatusCancelled,
	"stopped":              domain.StatusCancelled,
	"suspended":            domain.StatusCancelled,
	"replaced":             domain.StatusModified,
	"rejected":             domain.StatusRejected,
}

// MapOrderStatus maps a broker order status to its canonical value.
func MapOrderStatus(status string) string {
	if canonical, ok := statusMap[strings.ToLower(status)]; ok {
		return canonical
	}
	return strings.ToUpper(status)
}

// MapOrder maps one broker order record to the canonical order schema.
func MapOrder(o broker.Order) domain.Order {
	qty := util.Int(o.Qty, 0)
	filled := util.Int(o.FilledQty, 0)

	return domain.Order{
		OrderID:        o.ID,
		Symbol:         o.Symbol,
		Exchange:       domain.DefaultExchange,
		Action:         strings.ToUpper(o.Side),
		Quantity:       qty,
		Price:          util.Float(o.LimitPrice, 0),
		Product:        domain.ProductCNC,
		Status:         MapOrderStatus(o.Status),
		Timestamp:      o.CreatedAt,
		FilledQuantity: filled,
		// May go negative when the broker reports inconsistent quantities;
		// deliberately not clamped so the inconsistency stays visible.
		PendingQuantity: qty - filled,
		AveragePrice:    util.Float(o.FilledAvgPrice, 0),
		OrderType:       strings.ToUpper(o.Type),
		TriggerPrice:    util.Float(o.StopPrice, 0),
	}
}

// MapOrders maps a batch of broker orders, preserving order. Empty input
// yields an empty slice, not an error.
func MapOrders(orders []broker.Order) []domain.Order {
	mapped := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		mapped = append(mapped, MapOrder(o))
	}
	return mapped
}
