package broker

// Native Alpaca record shapes, consumed by the normalization mapper.
//
// Numeric fields are deliberately string-typed: the Alpaca REST API encodes
// quantities and prices as JSON strings, and the mapper's fallback
// extraction depends on telling an absent field ("") apart from a reported
// zero ("0"). Decoding into float fields would collapse that distinction.

// Order is a broker-native order record. Depending on order state the
// broker populates different subsets of these fields, so the mapper scans
// ordered candidate lists rather than trusting any single field.
type Order struct {
	ID            string `json:"id"`
	ClientOrderID string `json:"client_order_id,omitempty"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Status        string `json:"status"`
	Type          string `json:"type"`
	TimeInForce   string `json:"time_in_force,omitempty"`

	// Quantity candidates.
	Qty       string `json:"qty,omitempty"`
	FilledQty string `json:"filled_qty,omitempty"`
	Quantity  string `json:"quantity,omitempty"`

	// Price candidates.
	FilledAvgPrice string `json:"filled_avg_price,omitempty"`
	AvgFillPrice   string `json:"avg_fill_price,omitempty"`
	Price          string `json:"price,omitempty"`
	LimitPrice     string `json:"limit_price,omitempty"`
	StopPrice      string `json:"stop_price,omitempty"`
	TrailPrice     string `json:"trail_price,omitempty"`

	// Side fallbacks seen on some broker record variants.
	TransactionType string `json:"transaction_type,omitempty"`
	Action          string `json:"action,omitempty"`

	// Identifier fallbacks: Alpaca has no separate trade id, but some
	// record variants carry explicit trade_id / order_id fields.
	TradeID string `json:"trade_id,omitempty"`
	OrderID string `json:"order_id,omitempty"`

	// Timestamp candidates, execution time preferred over submission time.
	FilledAt    string `json:"filled_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`

	ExtendedHours bool `json:"extended_hours,omitempty"`
}

// Position is a broker-native position record.
type Position struct {
	Symbol                 string `json:"symbol"`
	Qty                    string `json:"qty"`
	AvgEntryPrice          string `json:"avg_entry_price"`
	MarketValue            string `json:"market_value"`
	UnrealizedPL           string `json:"unrealized_pl"`
	UnrealizedIntradayPL   string `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC string `json:"unrealized_intraday_plpc"`
	CurrentPrice           string `json:"current_price,omitempty"`
	Side                   string `json:"side"`
}

// Account is a broker-native account snapshot.
type Account struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Cash          string `json:"cash"`
	BuyingPower   string `json:"buying_power"`
	Equity        string `json:"equity"`
	LastEquity    string `json:"last_equity"`
	InitialMargin string `json:"initial_margin"`
	Currency      string `json:"currency,omitempty"`
}

// Asset is one entry of the broker's asset universe feed.
type Asset struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Class    string `json:"class,omitempty"`
	Status   string `json:"status,omitempty"`
	Tradable bool   `json:"tradable"`
}

// PlaceOrderBody is the broker-native request body for a new order. Price
// fields are omitted entirely (not sent as zero) when not applicable to the
// order type; the broker treats key presence as the signal.
type PlaceOrderBody struct {
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Qty           string `json:"qty"`
	TimeInForce   string `json:"time_in_force"`
	LimitPrice    string `json:"limit_price,omitempty"`
	StopPrice     string `json:"stop_price,omitempty"`
	ExtendedHours bool   `json:"extended_hours"`
}

// ModifyOrderBody is the broker-native request body for an order
// modification. Only keys present in the caller's delta are emitted.
type ModifyOrderBody struct {
	Qty         string `json:"qty,omitempty"`
	LimitPrice  string `json:"limit_price,omitempty"`
	StopPrice   string `json:"stop_price,omitempty"`
	TimeInForce string `json:"time_in_force,omitempty"`
}

// Quote is a best bid/offer snapshot for one symbol.
type Quote struct {
	Symbol   string  `json:"symbol"`
	BidPrice float64 `json:"bid_price"`
	BidSize  int     `json:"bid_size"`
	AskPrice float64 `json:"ask_price"`
	AskSize  int     `json:"ask_size"`
	Time     string  `json:"timestamp"`
}

// DepthLevel is one price level of a market depth view.
type DepthLevel struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Orders   int     `json:"orders"`
}

// Depth is a synthetic market depth view. Alpaca exposes no order-book
// feed, so depth is a single level built from the latest quote.
type Depth struct {
	Symbol   string       `json:"symbol"`
	Exchange string       `json:"exchange"`
	Bids     []DepthLevel `json:"bids"`
	Asks     []DepthLevel `json:"asks"`
}
