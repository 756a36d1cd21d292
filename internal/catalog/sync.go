package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
	"tradelink/internal/mapping"
)

var (
	// ErrEmptyFeed means the broker returned zero assets; the existing
	// catalog is left untouched rather than wiped.
	ErrEmptyFeed = errors.New("asset feed returned no instruments")

	// ErrEmptyFilter means every fetched asset was filtered out
	// (untradable or missing a symbol).
	ErrEmptyFilter = errors.New("no tradable instruments after filtering")

	// ErrSyncIntegrity means the post-commit row count did not confirm
	// the write.
	ErrSyncIntegrity = errors.New("catalog row count verification failed")
)

// EventSink receives terminal sync notifications. Both success and failure
// paths emit exactly one event.
type EventSink interface {
	Emit(status, message string)
}

// nopSink discards events.
type nopSink struct{}

func (nopSink) Emit(string, string) {}

// Result summarises a completed sync pass.
type Result struct {
	Fetched  int `json:"fetched"`
	Skipped  int `json:"skipped"`
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// Syncer refreshes the catalog partition owned by this broker from the
// broker's asset universe. Concurrent Sync calls serialise on a mutex so
// overlapping passes cannot interleave their delete+insert windows.
type Syncer struct {
	feed  broker.AssetFeed
	store *Store
	sink  EventSink
	log   *slog.Logger

	mu sync.Mutex
}

// NewSyncer builds a Syncer. sink may be nil.
func NewSyncer(feed broker.AssetFeed, store *Store, sink EventSink, log *slog.Logger) *Syncer {
	if sink == nil {
		sink = nopSink{}
	}
	return &Syncer{feed: feed, store: store, sink: sink, log: log}
}

// partition is the set of native exchange codes this integration owns in
// the shared symtoken table. It must cover every code the asset feed can
// produce, or a re-sync would leak stale rows.
var partition = []string{
	domain.ExchangeNASDAQ, domain.ExchangeNYSE, domain.ExchangeAMEX,
	"ARCA", "BATS", "IEX", "OTC",
}

// Sync fetches the asset universe, filters and normalises it, and replaces
// this broker's catalog partition in a single transaction. Every terminal
// path emits a sink event and, on failure, also returns the error.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("starting contract sync")

	assets, err := s.feed.GetAssets(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("fetching assets: %w", err))
	}
	if len(assets) == 0 {
		return s.fail(ErrEmptyFeed)
	}

	rows := make([]domain.Instrument, 0, len(assets))
	skipped := 0
	for _, a := range assets {
		if !a.Tradable || a.Symbol == "" {
			skipped++
			continue
		}
		rows = append(rows, mapping.InstrumentFromAsset(a))
	}
	if skipped > 0 {
		s.log.Info("filtered untradable assets", "skipped", skipped)
	}
	if len(rows) == 0 {
		return s.fail(ErrEmptyFilter)
	}

	deleted, inserted, err := s.store.ReplacePartition(ctx, partition, rows)
	if err != nil {
		return s.fail(fmt.Errorf("replacing catalog partition: %w", err))
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("verifying catalog: %w", err))
	}
	if total == 0 {
		return s.fail(ErrSyncIntegrity)
	}

	res := Result{
		Fetched:  len(assets),
		Skipped:  skipped,
		Deleted:  deleted,
		Inserted: inserted,
		Total:    total,
	}
	msg := fmt.Sprintf("Successfully downloaded %d instruments", inserted)
	s.log.Info("contract sync complete",
		"fetched", res.Fetched, "skipped", res.Skipped,
		"deleted", res.Deleted, "inserted", res.Inserted, "total", res.Total)
	s.sink.Emit("success", msg)
	return res, nil
}

func (s *Syncer) fail(err error) (Result, error) {
	s.log.Error("contract sync failed", "error", err)
	s.sink.Emit("error", err.Error())
	return Result{}, err
}
