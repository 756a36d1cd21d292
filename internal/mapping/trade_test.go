package mapping

import (
	"testing"

	"tradelink/internal/broker"
)

func TestMapTradeFilledOrder(t *testing.T) {
	got := MapTrade(broker.Order{
		ID:             "X",
		Symbol:         "AAPL",
		Side:           "buy",
		FilledQty:      "10",
		FilledAvgPrice: "150.25",
		FilledAt:       "2023-01-01T10:01:30Z",
		CreatedAt:      "2023-01-01T10:00:00Z",
	})

	if got.Quantity != 10 {
		t.Errorf("Quantity = %d, want 10", got.Quantity)
	}
	if got.AveragePrice != 150.25 {
		t.Errorf("AveragePrice = %v, want 150.25", got.AveragePrice)
	}
	if got.TradeValue != 1502.5 {
		t.Errorf("TradeValue = %v, want 1502.5", got.TradeValue)
	}
	if got.Action != "BUY" {
		t.Errorf("Action = %q, want BUY", got.Action)
	}
	if got.Status != "COMPLETE" {
		t.Errorf("Status = %q, want COMPLETE", got.Status)
	}
	// Execution time preferred over submission time.
	if got.Timestamp != "2023-01-01T10:01:30Z" {
		t.Errorf("Timestamp = %q, want filled_at value", got.Timestamp)
	}
	// Order id doubles as trade id for this broker.
	if got.TradeID != "X" || got.OrderID != "X" {
		t.Errorf("ids = %q/%q, want X/X", got.TradeID, got.OrderID)
	}
}

func TestMapTradeQuantityFallback(t *testing.T) {
	// filled_qty absent: qty is the next candidate.
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", Qty: "5", Price: "10"})
	if got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5 (from qty)", got.Quantity)
	}

	// filled_qty zero does not satisfy the candidate; scan continues.
	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", FilledQty: "0", Quantity: "7", Price: "10"})
	if got.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7 (zero filled_qty skipped)", got.Quantity)
	}

	// All candidates absent: quantity 0, trade value 0.
	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", Price: "10"})
	if got.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", got.Quantity)
	}
	if got.TradeValue != 0 {
		t.Errorf("TradeValue = %v, want 0", got.TradeValue)
	}
}

func TestMapTradeQuantityTruncation(t *testing.T) {
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", FilledQty: "10.9", FilledAvgPrice: "2"})
	if got.Quantity != 10 {
		t.Errorf("Quantity = %d, want 10 (truncated, not rounded)", got.Quantity)
	}
}

func TestMapTradePriceCascade(t *testing.T) {
	// avg_fill_price wins over later candidates.
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", FilledQty: "1", AvgFillPrice: "99.5", LimitPrice: "100"})
	if got.AveragePrice != 99.5 {
		t.Errorf("AveragePrice = %v, want 99.5", got.AveragePrice)
	}

	// Zero candidates are skipped, not accepted.
	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", FilledQty: "1", FilledAvgPrice: "0", LimitPrice: "101"})
	if got.AveragePrice != 101 {
		t.Errorf("AveragePrice = %v, want 101 (zero filled_avg_price skipped)", got.AveragePrice)
	}
}

func TestMapTradeStopPriceFallback(t *testing.T) {
	// Stop price used only when every fill-price candidate is absent/zero
	// and the trade has a known quantity.
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "sell", FilledQty: "2", StopPrice: "10.0"})
	if got.AveragePrice != 10.0 {
		t.Errorf("AveragePrice = %v, want 10.0 (stop_price fallback)", got.AveragePrice)
	}
	if got.TradeValue != 20.0 {
		t.Errorf("TradeValue = %v, want 20.0", got.TradeValue)
	}

	// Without a quantity the stop price is not consulted.
	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "sell", StopPrice: "10.0"})
	if got.AveragePrice != 0 {
		t.Errorf("AveragePrice = %v, want 0 (no quantity, no fallback)", got.AveragePrice)
	}

	// A positive fill price beats the stop fallback.
	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "sell", FilledQty: "2", FilledAvgPrice: "11", StopPrice: "10.0"})
	if got.AveragePrice != 11 {
		t.Errorf("AveragePrice = %v, want 11", got.AveragePrice)
	}
}

func TestMapTradeSideFallback(t *testing.T) {
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", TransactionType: "sell"})
	if got.Action != "SELL" {
		t.Errorf("Action = %q, want SELL (transaction_type fallback)", got.Action)
	}

	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Action: "buy"})
	if got.Action != "BUY" {
		t.Errorf("Action = %q, want BUY (action fallback)", got.Action)
	}
}

func TestMapTradeTimestampPreference(t *testing.T) {
	got := MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", UpdatedAt: "u", SubmittedAt: "s", CreatedAt: "c"})
	if got.Timestamp != "u" {
		t.Errorf("Timestamp = %q, want updated_at when filled_at absent", got.Timestamp)
	}

	got = MapTrade(broker.Order{ID: "a", Symbol: "AAPL", Side: "buy", CreatedAt: "c"})
	if got.Timestamp != "c" {
		t.Errorf("Timestamp = %q, want created_at as last resort", got.Timestamp)
	}
}

func TestMapTradesFiltersEmptyRecords(t *testing.T) {
	trades := MapTrades([]broker.Order{
		{ID: "a", Symbol: "AAPL", Side: "buy", FilledQty: "1", FilledAvgPrice: "10"},
		{}, // wholly empty record: no symbol, no action
		{ID: "c", Symbol: "", Side: "sell"}, // action present, kept
	})
	if len(trades) != 2 {
		t.Fatalf("MapTrades returned %d trades, want 2", len(trades))
	}

	if got := MapTrades(nil); len(got) != 0 {
		t.Errorf("MapTrades(nil) returned %d trades, want 0", len(got))
	}
}
