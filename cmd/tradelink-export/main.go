// One-shot tool: export the instrument catalog to a parquet snapshot for
// offline analysis.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"tradelink/internal/catalog"
	"tradelink/internal/config"
	"tradelink/internal/util"
)

func main() {
	out := flag.String("out", "catalog.parquet", "output parquet path")
	flag.Parse()

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

	store, err := catalog.NewStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening catalog store: %v", err)
	}
	defer store.Close()

	n, err := store.ExportParquet(context.Background(), *out)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	fmt.Printf("wrote %d instruments to %s\n", n, *out)
}
