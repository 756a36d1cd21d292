// One-shot tool: refresh the instrument catalog from the broker's asset
// universe and print the result.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tradelink/internal/broker"
	"tradelink/internal/catalog"
	"tradelink/internal/config"
	"tradelink/internal/util"
)

func main() {
	cfgPath := "config/tradelink.yaml"
	if p := os.Getenv("TRADELINK_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	client := broker.NewClient(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, cfg.Sync.RateLimitPerMin)

	store, err := catalog.NewStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening catalog store: %v", err)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	syncer := catalog.NewSyncer(client, store, nil, logger)
	res, err := syncer.Sync(ctx)
	if err != nil {
		log.Fatalf("contract sync failed: %v", err)
	}

	fmt.Printf("fetched=%d skipped=%d deleted=%d inserted=%d total=%d\n",
		res.Fetched, res.Skipped, res.Deleted, res.Inserted, res.Total)
}
