package domain

// PlaceOrderRequest is the canonical new-order request.
type PlaceOrderRequest struct {
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange,omitempty"`
	Action        string  `json:"action"`
	Quantity      float64 `json:"quantity"`
	PriceType     string  `json:"pricetype"`
	Price         float64 `json:"price,omitempty"`
	TriggerPrice  float64 `json:"trigger_price,omitempty"`
	Validity      string  `json:"validity,omitempty"`
	ExtendedHours bool    `json:"extended_hours,omitempty"`
}

// ModifyOrderRequest is a canonical partial-update request. Nil fields were
// absent from the caller's delta and must not be forwarded to the broker.
type ModifyOrderRequest struct {
	Quantity     *float64 `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	TriggerPrice *float64 `json:"trigger_price,omitempty"`
	Validity     *string  `json:"validity,omitempty"`
}
