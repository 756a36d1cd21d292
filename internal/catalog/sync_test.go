package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
)

type fakeFeed struct {
	assets []broker.Asset
	err    error
}

func (f *fakeFeed) GetAssets(ctx context.Context) ([]broker.Asset, error) {
	return f.assets, f.err
}

type recordSink struct {
	status, message string
	calls           int
}

func (r *recordSink) Emit(status, message string) {
	r.status, r.message = status, message
	r.calls++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asset(symbol, exchange string, tradable bool) broker.Asset {
	return broker.Asset{
		ID:       "id-" + symbol,
		Symbol:   symbol,
		Name:     symbol + " Inc",
		Exchange: exchange,
		Tradable: tradable,
	}
}

func TestSync(t *testing.T) {
	s := newTestStore(t)
	feed := &fakeFeed{assets: []broker.Asset{
		asset("AAPL", "NASDAQ", true),
		asset("GE", "NYSE", true),
		asset("DEAD", "NYSE", false),
		{ID: "id-blank", Exchange: "NASDAQ", Tradable: true},
	}}
	sink := &recordSink{}
	syncer := NewSyncer(feed, s, sink, discardLogger())

	res, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Fetched != 4 || res.Skipped != 2 || res.Inserted != 2 || res.Total != 2 {
		t.Errorf("result = %+v", res)
	}
	if sink.calls != 1 || sink.status != "success" {
		t.Errorf("sink: calls=%d status=%q", sink.calls, sink.status)
	}
	if sink.message != "Successfully downloaded 2 instruments" {
		t.Errorf("message = %q", sink.message)
	}

	got, err := s.GetSymbol(context.Background(), "AAPL", domain.ExchangeNASDAQ)
	if err != nil {
		t.Fatalf("GetSymbol after sync: %v", err)
	}
	if got.Token != "id-AAPL" || got.LotSize != 1 {
		t.Errorf("instrument = %+v", got)
	}
}

func TestSyncIdempotent(t *testing.T) {
	s := newTestStore(t)
	feed := &fakeFeed{assets: []broker.Asset{asset("AAPL", "NASDAQ", true)}}
	syncer := NewSyncer(feed, s, nil, discardLogger())

	for i := 0; i < 3; i++ {
		res, err := syncer.Sync(context.Background())
		if err != nil {
			t.Fatalf("Sync %d: %v", i, err)
		}
		if res.Total != 1 {
			t.Errorf("Sync %d: total = %d, want 1", i, res.Total)
		}
	}
}

func TestSyncEmptyFeedPreservesCatalog(t *testing.T) {
	s := newTestStore(t)
	feed := &fakeFeed{assets: []broker.Asset{asset("AAPL", "NASDAQ", true)}}
	sink := &recordSink{}
	syncer := NewSyncer(feed, s, sink, discardLogger())

	if _, err := syncer.Sync(context.Background()); err != nil {
		t.Fatalf("seed Sync: %v", err)
	}

	feed.assets = nil
	_, err := syncer.Sync(context.Background())
	if !errors.Is(err, ErrEmptyFeed) {
		t.Fatalf("err = %v, want ErrEmptyFeed", err)
	}
	if sink.status != "error" {
		t.Errorf("sink status = %q, want error", sink.status)
	}

	// The previous catalog survives a failed pass.
	if n, _ := s.Count(context.Background()); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestSyncAllFiltered(t *testing.T) {
	s := newTestStore(t)
	feed := &fakeFeed{assets: []broker.Asset{asset("DEAD", "NYSE", false)}}
	sink := &recordSink{}
	syncer := NewSyncer(feed, s, sink, discardLogger())

	_, err := syncer.Sync(context.Background())
	if !errors.Is(err, ErrEmptyFilter) {
		t.Fatalf("err = %v, want ErrEmptyFilter", err)
	}
	if sink.calls != 1 || sink.status != "error" {
		t.Errorf("sink: calls=%d status=%q", sink.calls, sink.status)
	}
}

func TestSyncFeedError(t *testing.T) {
	s := newTestStore(t)
	wantErr := errors.New("connection refused")
	feed := &fakeFeed{err: wantErr}
	sink := &recordSink{}
	syncer := NewSyncer(feed, s, sink, discardLogger())

	_, err := syncer.Sync(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
	if sink.status != "error" {
		t.Errorf("sink status = %q, want error", sink.status)
	}
}

func TestSyncExchangeNormalisation(t *testing.T) {
	s := newTestStore(t)
	feed := &fakeFeed{assets: []broker.Asset{
		asset("SPY", "ARCA", true),
		asset("CBOE", "BATS", true),
	}}
	syncer := NewSyncer(feed, s, nil, discardLogger())

	if _, err := syncer.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	spy, err := s.GetSymbol(context.Background(), "SPY", domain.ExchangeNYSE)
	if err != nil {
		t.Fatalf("SPY not under NYSE: %v", err)
	}
	if spy.BrokerExchange != "ARCA" {
		t.Errorf("BrokerExchange = %q, want ARCA", spy.BrokerExchange)
	}
	if _, err := s.GetSymbol(context.Background(), "CBOE", domain.ExchangeNASDAQ); err != nil {
		t.Errorf("BATS listing not under NASDAQ: %v", err)
	}
}

func TestNewStoreBadPath(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing", "nested", "catalog.db"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
