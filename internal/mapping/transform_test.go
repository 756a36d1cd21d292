package mapping

import (
	"errors"
	"strings"
	"testing"

	"tradelink/internal/domain"
)

func TestTransformOrderLimit(t *testing.T) {
	body, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol:    "AAPL",
		Action:    "BUY",
		Quantity:  10,
		PriceType: "LIMIT",
		Price:     100,
	})
	if err != nil {
		t.Fatalf("TransformOrder: %v", err)
	}

	if body.Side != "buy" || body.Type != "limit" {
		t.Errorf("side/type = %q/%q, want buy/limit", body.Side, body.Type)
	}
	if body.Qty != "10" {
		t.Errorf("Qty = %q, want %q (string-encoded)", body.Qty, "10")
	}
	if body.LimitPrice != "100" {
		t.Errorf("LimitPrice = %q, want %q", body.LimitPrice, "100")
	}
	if body.StopPrice != "" {
		t.Errorf("StopPrice = %q, want omitted for a limit order", body.StopPrice)
	}
	if body.TimeInForce != "day" {
		t.Errorf("TimeInForce = %q, want day default", body.TimeInForce)
	}
}

func TestTransformOrderMarketOmitsPrices(t *testing.T) {
	body, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol:    "AAPL",
		Action:    "SELL",
		Quantity:  5,
		PriceType: "MARKET",
		Price:     100, // present in the request but not applicable
	})
	if err != nil {
		t.Fatalf("TransformOrder: %v", err)
	}
	if body.LimitPrice != "" || body.StopPrice != "" {
		t.Errorf("market order carries prices: limit=%q stop=%q", body.LimitPrice, body.StopPrice)
	}
}

func TestTransformOrderStopVariants(t *testing.T) {
	// SL and SL-M both map to a plain stop order.
	for _, pt := range []string{"SL", "SL-M", "STOP"} {
		body, err := TransformOrder(domain.PlaceOrderRequest{
			Symbol: "AAPL", Action: "BUY", Quantity: 1, PriceType: pt, TriggerPrice: 95,
		})
		if err != nil {
			t.Fatalf("TransformOrder(%s): %v", pt, err)
		}
		if body.Type != "stop" {
			t.Errorf("type for %s = %q, want stop", pt, body.Type)
		}
		if body.StopPrice != "95" {
			t.Errorf("StopPrice for %s = %q, want 95", pt, body.StopPrice)
		}
		if body.LimitPrice != "" {
			t.Errorf("LimitPrice for %s = %q, want omitted", pt, body.LimitPrice)
		}
	}

	body, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol: "AAPL", Action: "BUY", Quantity: 1, PriceType: "STOP_LIMIT", Price: 96, TriggerPrice: 95,
	})
	if err != nil {
		t.Fatalf("TransformOrder(STOP_LIMIT): %v", err)
	}
	if body.LimitPrice != "96" || body.StopPrice != "95" {
		t.Errorf("stop_limit prices = %q/%q, want 96/95", body.LimitPrice, body.StopPrice)
	}
}

func TestTransformOrderUnknownTypeDefaultsMarket(t *testing.T) {
	body, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol: "AAPL", Action: "BUY", Quantity: 1, PriceType: "ICEBERG",
	})
	if err != nil {
		t.Fatalf("TransformOrder: %v", err)
	}
	if body.Type != "market" {
		t.Errorf("type = %q, want market default", body.Type)
	}
}

func TestTransformOrderValidity(t *testing.T) {
	cases := map[string]string{"DAY": "day", "GTC": "gtc", "IOC": "ioc", "FOK": "fok", "WEEK": "day"}
	for in, want := range cases {
		body, err := TransformOrder(domain.PlaceOrderRequest{
			Symbol: "AAPL", Action: "BUY", Quantity: 1, PriceType: "MARKET", Validity: in,
		})
		if err != nil {
			t.Fatalf("TransformOrder(%s): %v", in, err)
		}
		if body.TimeInForce != want {
			t.Errorf("TimeInForce for %q = %q, want %q", in, body.TimeInForce, want)
		}
	}
}

func TestTransformOrderUnknownActionPassthrough(t *testing.T) {
	// Unknown actions pass through lower-cased; only exchange raises.
	body, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol: "AAPL", Action: "SHORT", Quantity: 1, PriceType: "MARKET",
	})
	if err != nil {
		t.Fatalf("TransformOrder: %v", err)
	}
	if body.Side != "short" {
		t.Errorf("Side = %q, want short (lower-cased passthrough)", body.Side)
	}
}

func TestMapExchange(t *testing.T) {
	for _, ex := range []string{"NASDAQ", "NYSE", "AMEX", "nasdaq"} {
		got, err := MapExchange(ex)
		if err != nil {
			t.Fatalf("MapExchange(%s): %v", ex, err)
		}
		if got != strings.ToUpper(ex) {
			t.Errorf("MapExchange(%s) = %q", ex, got)
		}
	}
}

func TestMapExchangeUnsupported(t *testing.T) {
	_, err := MapExchange("LSE")
	if err == nil {
		t.Fatal("MapExchange(LSE) should fail")
	}
	var ueErr *UnsupportedExchangeError
	if !errors.As(err, &ueErr) {
		t.Fatalf("error type = %T, want *UnsupportedExchangeError", err)
	}
	if ueErr.Exchange != "LSE" {
		t.Errorf("Exchange = %q, want LSE", ueErr.Exchange)
	}
	msg := err.Error()
	for _, want := range []string{"LSE", "NASDAQ", "NYSE", "AMEX"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestTransformOrderRejectsUnsupportedExchange(t *testing.T) {
	_, err := TransformOrder(domain.PlaceOrderRequest{
		Symbol: "VOD", Exchange: "LSE", Action: "BUY", Quantity: 1, PriceType: "MARKET",
	})
	var ueErr *UnsupportedExchangeError
	if !errors.As(err, &ueErr) {
		t.Fatalf("error = %v, want *UnsupportedExchangeError", err)
	}
}

func TestTransformModifyOrderPartial(t *testing.T) {
	qty := 15.0
	trig := 99.5
	body := TransformModifyOrder(domain.ModifyOrderRequest{Quantity: &qty, TriggerPrice: &trig})

	if body.Qty != "15" {
		t.Errorf("Qty = %q, want 15", body.Qty)
	}
	if body.StopPrice != "99.5" {
		t.Errorf("StopPrice = %q, want 99.5", body.StopPrice)
	}
	// Absent delta fields are never fabricated.
	if body.LimitPrice != "" || body.TimeInForce != "" {
		t.Errorf("absent fields emitted: limit=%q tif=%q", body.LimitPrice, body.TimeInForce)
	}
}

func TestTransformModifyOrderEmptyDelta(t *testing.T) {
	body := TransformModifyOrder(domain.ModifyOrderRequest{})
	if body.Qty != "" || body.LimitPrice != "" || body.StopPrice != "" || body.TimeInForce != "" {
		t.Errorf("empty delta should produce an empty body, got %+v", body)
	}
}
