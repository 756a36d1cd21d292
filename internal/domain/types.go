// Package domain defines the canonical, broker-neutral representations of
// orders, trades, positions, instruments, and account funds that every
// broker integration is normalized to and from.
package domain

// Exchange is a canonical exchange identifier.
type Exchange = string

// Canonical exchanges supported by this broker family (US equities only).
const (
	ExchangeNASDAQ Exchange = "NASDAQ"
	ExchangeNYSE   Exchange = "NYSE"
	ExchangeAMEX   Exchange = "AMEX"
)

// DefaultExchange is used when the broker does not report an exchange on a
// record (Alpaca does not report exchange per order or fill).
const DefaultExchange = ExchangeNASDAQ

// ProductCNC is the only product type for this broker family. Alpaca has no
// product-type concept, so everything maps to cash-and-carry.
const ProductCNC = "CNC"

// Canonical order statuses.
const (
	StatusPending   = "PENDING"
	StatusOpen      = "OPEN"
	StatusComplete  = "COMPLETE"
	StatusCancelled = "CANCELLED"
	StatusModified  = "MODIFIED"
	StatusRejected  = "REJECTED"
)

// Canonical order actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Order is the canonical view of a broker order. It is transient: rebuilt
// from the broker response on every request, never persisted.
type Order struct {
	OrderID         string  `json:"orderid"`
	Symbol          string  `json:"symbol"`
	Exchange        string  `json:"exchange"`
	Action          string  `json:"action"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	Product         string  `json:"product"`
	Status          string  `json:"status"`
	Timestamp       string  `json:"timestamp"`
	FilledQuantity  int     `json:"filled_quantity"`
	PendingQuantity int     `json:"pending_quantity"`
	AveragePrice    float64 `json:"average_price"`
	OrderType       string  `json:"order_type"`
	TriggerPrice    float64 `json:"trigger_price"`
}

// Trade is the canonical view of a realized fill. Status is always
// COMPLETE by construction.
type Trade struct {
	TradeID      string  `json:"tradeid"`
	OrderID      string  `json:"orderid"`
	Symbol       string  `json:"symbol"`
	Exchange     string  `json:"exchange"`
	Action       string  `json:"action"`
	Quantity     int     `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	TradeValue   float64 `json:"trade_value"`
	Product      string  `json:"product"`
	OrderType    string  `json:"order_type"`
	Timestamp    string  `json:"timestamp"`
	Status       string  `json:"status"`
}

// Position is the canonical view of an open position.
type Position struct {
	Symbol       string  `json:"symbol"`
	Exchange     string  `json:"exchange"`
	Quantity     int     `json:"quantity"`
	Product      string  `json:"product"`
	AveragePrice float64 `json:"average_price"`
	PNL          float64 `json:"pnl"`
	DayChange    float64 `json:"day_change"`
	MarketValue  float64 `json:"market_value"`
	Side         string  `json:"side"`
}

// Holding is a portfolio line item: a position enriched with derived
// per-share and intraday-percentage figures.
type Holding struct {
	Symbol           string  `json:"symbol"`
	Exchange         string  `json:"exchange"`
	Quantity         int     `json:"quantity"`
	AveragePrice     float64 `json:"average_price"`
	CurrentPrice     float64 `json:"current_price"`
	PNL              float64 `json:"pnl"`
	DayChange        float64 `json:"day_change"`
	DayChangePercent float64 `json:"day_change_percent"`
	MarketValue      float64 `json:"market_value"`
}

// Instrument is a catalog row: one tradable symbol in the persisted
// instrument catalog. Rows are unique per (symbol, exchange) and are only
// ever replaced wholesale by a contract sync pass.
type Instrument struct {
	Symbol         string  `json:"symbol"`
	BrokerSymbol   string  `json:"brsymbol"`
	Name           string  `json:"name"`
	Exchange       string  `json:"exchange"`
	BrokerExchange string  `json:"brexchange"`
	Token          string  `json:"token"`
	Expiry         string  `json:"expiry"`
	Strike         float64 `json:"strike"`
	LotSize        int     `json:"lotsize"`
	InstrumentType string  `json:"instrumenttype"`
	TickSize       float64 `json:"tick_size"`
}

// MarginSnapshot is the canonical funds view. All monetary fields are
// rendered as fixed two-decimal strings in the external payload.
type MarginSnapshot struct {
	AvailableCash  string `json:"availablecash"`
	Collateral     string `json:"collateral"`
	UtilisedDebits string `json:"utiliseddebits"`
	UnrealizedPNL  string `json:"m2munrealized"`
	RealizedPNL    string `json:"m2mrealized"`
}

// OrderStats summarizes an order book by canonical status.
type OrderStats struct {
	TotalOrders     int `json:"total_orders"`
	CompletedOrders int `json:"completed_orders"`
	PendingOrders   int `json:"pending_orders"`
	CancelledOrders int `json:"cancelled_orders"`
}

// PortfolioStats summarizes a portfolio.
type PortfolioStats struct {
	TotalHoldingValue  float64 `json:"total_holding_value"`
	TotalInvestedValue float64 `json:"total_invested_value"`
	TotalPNL           float64 `json:"total_pnl"`
	TotalPNLPercent    float64 `json:"total_pnl_percent"`
	PositionsCount     int     `json:"positions_count"`
}
