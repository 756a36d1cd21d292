package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradelink/internal/broker"
	"tradelink/internal/catalog"
	"tradelink/internal/config"
	"tradelink/internal/events"
	"tradelink/internal/httpapi"
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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := client.VerifyCredentials(ctx); err != nil {
		log.Fatalf("broker credential check failed: %v", err)
	}

	store, err := catalog.NewStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening catalog store: %v", err)
	}
	defer store.Close()

	hub := events.NewHub(logger)
	syncer := catalog.NewSyncer(client, store, hub, logger)

	if cfg.Sync.OnStartup {
		go func() {
			if _, err := syncer.Sync(ctx); err != nil {
				logger.Error("startup contract sync failed", "error", err)
			}
		}()
	}

	quotes := broker.NewQuoteClient(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)

	api := httpapi.NewServer(client, quotes, store, syncer, hub, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("tradelink-server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
