package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
)

// UnsupportedExchangeError is returned when a canonical exchange has no
// counterpart at this broker.
type UnsupportedExchangeError struct {
	Exchange  string
	Supported []string
}

func (e *UnsupportedExchangeError) Error() string {
	return fmt.Sprintf("exchange %q is not supported by this broker; supported exchanges: %s",
		e.Exchange, strings.Join(e.Supported, ", "))
}

// supportedExchanges lists the canonical exchanges this broker trades on.
var supportedExchanges = []string{
	domain.ExchangeNASDAQ,
	domain.ExchangeNYSE,
	domain.ExchangeAMEX,
}

// MapExchange validates a canonical exchange against the broker's
// supported set. The mapping is identity for supported values; anything
// else is an UnsupportedExchangeError, never a silent default.
func MapExchange(exchange string) (string, error) {
	upper := strings.ToUpper(exchange)
	for _, s := range supportedExchanges {
		if upper == s {
			return s, nil
		}
	}
	return "", &UnsupportedExchangeError{Exchange: exchange, Supported: supportedExchanges}
}

// mapAction maps a canonical action to the broker's side vocabulary.
// Unknown actions pass through lower-cased; the broker rejects them itself.
func mapAction(action string) string {
	switch strings.ToUpper(action) {
	case domain.ActionBuy:
		return "buy"
	case domain.ActionSell:
		return "sell"
	default:
		return strings.ToLower(action)
	}
}

// mapOrderType maps a canonical price type to the broker's order type.
// Unrecognized types default to market.
func mapOrderType(priceType string) string {
	switch strings.ToUpper(priceType) {
	case "MARKET":
		return "market"
	case "LIMIT":
		return "limit"
	case "SL", "SL-M", "STOP":
		return "stop"
	case "STOP_LIMIT":
		return "stop_limit"
	default:
		return "market"
	}
}

// mapValidity maps a canonical validity to the broker's time-in-force.
// Unrecognized values default to day.
func mapValidity(validity string) string {
	switch strings.ToUpper(validity) {
	case "GTC":
		return "gtc"
	case "IOC":
		return "ioc"
	case "FOK":
		return "fok"
	default:
		return "day"
	}
}

// TransformOrder converts a canonical order request into the broker-native
// request body. Limit and stop prices are emitted only for order types that
// use them — the broker reads key presence, not zero values, as the signal.
// An unsupported exchange is the one validation failure raised here.
func TransformOrder(req domain.PlaceOrderRequest) (broker.PlaceOrderBody, error) {
	if req.Exchange != "" {
		if _, err := MapExchange(req.Exchange); err != nil {
			return broker.PlaceOrderBody{}, err
		}
	}

	priceType := strings.ToUpper(req.PriceType)
	validity := req.Validity
	if validity == "" {
		validity = "day"
	}

	body := broker.PlaceOrderBody{
		Symbol:        req.Symbol,
		Side:          mapAction(req.Action),
		Type:          mapOrderType(req.PriceType),
		Qty:           strconv.Itoa(int(req.Quantity)),
		TimeInForce:   mapValidity(validity),
		ExtendedHours: req.ExtendedHours,
	}

	if priceType == "LIMIT" || priceType == "STOP_LIMIT" {
		body.LimitPrice = formatPrice(req.Price)
	}
	if priceType == "STOP" || priceType == "STOP_LIMIT" {
		body.StopPrice = formatPrice(req.TriggerPrice)
	}

	return body, nil
}

// TransformModifyOrder converts a canonical modify delta into the
// broker-native body, emitting only the keys present in the delta.
func TransformModifyOrder(req domain.ModifyOrderRequest) broker.ModifyOrderBody {
	var body broker.ModifyOrderBody
	if req.Quantity != nil {
		body.Qty = strconv.Itoa(int(*req.Quantity))
	}
	if req.Price != nil {
		body.LimitPrice = formatPrice(*req.Price)
	}
	if req.TriggerPrice != nil {
		body.StopPrice = formatPrice(*req.TriggerPrice)
	}
	if req.Validity != nil {
		body.TimeInForce = mapValidity(*req.Validity)
	}
	return body
}

// formatPrice renders a price for the broker's string-typed wire format.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// SupportedExchanges returns the canonical exchanges this broker supports.
func SupportedExchanges() []string {
	out := make([]string, len(supportedExchanges))
	copy(out, supportedExchanges)
	return out
}

// SupportedOrderTypes returns the broker's native order types.
func SupportedOrderTypes() []string {
	return []string{"market", "limit", "stop", "stop_limit"}
}

// SupportedTimeframes returns the broker's market-data timeframes.
func SupportedTimeframes() []string {
	return []string{"1Min", "5Min", "15Min", "30Min", "1Hour", "1Day", "1Week", "1Month"}
}
