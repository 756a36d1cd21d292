package httpapi

import "tradelink/internal/domain"

// OrderBookResponse carries the normalised order book plus summary counts.
type OrderBookResponse struct {
	Orders     []domain.Order    `json:"orders"`
	Statistics domain.OrderStats `json:"statistics"`
}

// TradeBookResponse carries executed trades.
type TradeBookResponse struct {
	Trades []domain.Trade `json:"trades"`
}

// PositionBookResponse carries open positions.
type PositionBookResponse struct {
	Positions []domain.Position `json:"positions"`
}

// HoldingsResponse carries holdings plus portfolio-level aggregates.
type HoldingsResponse struct {
	Holdings   []domain.Holding      `json:"holdings"`
	Statistics domain.PortfolioStats `json:"statistics"`
}

// PlaceOrderResponse is returned after a successful order placement.
type PlaceOrderResponse struct {
	OrderID string `json:"orderid"`
}

// CancelAllResponse lists the orders cancelled by a cancel-all sweep.
type CancelAllResponse struct {
	Cancelled []string `json:"cancelled"`
	Failed    []string `json:"failed,omitempty"`
}

// CloseAllResponse lists the positions flattened by a close-all sweep.
type CloseAllResponse struct {
	Closed []string `json:"closed"`
	Failed []string `json:"failed,omitempty"`
}

// SearchResponse carries catalog search results.
type SearchResponse struct {
	Results []domain.Instrument `json:"results"`
}

// QuoteResponse is the normalised latest quote for a symbol.
type QuoteResponse struct {
	Symbol  string  `json:"symbol"`
	Bid     float64 `json:"bid"`
	BidSize int64   `json:"bid_size"`
	Ask     float64 `json:"ask"`
	AskSize int64   `json:"ask_size"`
}

// CapabilitiesResponse advertises what this integration supports.
type CapabilitiesResponse struct {
	Exchanges  []string `json:"exchanges"`
	OrderTypes []string `json:"order_types"`
	Timeframes []string `json:"timeframes"`
}
