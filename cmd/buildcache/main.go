package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/snapshot"
)

// buildcache walks the full UF x modality grid once and writes the offline
// snapshot. Meant for cron or a manual refresh; the engine does the same
// thing on a timer when snapshot.enabled is set.
func main() {
	var (
		cfgPath   = flag.String("config", "", "path to config.yml (default: bootstrap into data dir)")
		outPath   = flag.String("out", "", "output path (default: snapshot.out_path or <data dir>/snapshot.json)")
		rangeDays = flag.Int("range-days", 0, "override search.range_days")
		workers   = flag.Int("workers", 0, "override snapshot.workers")
	)
	flag.Parse()

	dataDir := os.Getenv("MEDVAGAS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	path := *cfgPath
	if path == "" {
		var err error
		path, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", path, err)
	}

	if *rangeDays > 0 {
		cfg.Search.RangeDays = *rangeDays
	}
	if *workers > 0 {
		cfg.Snapshot.Workers = *workers
	}

	out := *outPath
	if out == "" {
		out = cfg.Snapshot.OutPath
	}
	if out == "" {
		out = filepath.Join(dataDir, "snapshot.json")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pncp.NewClient(cfg.PNCP.BaseURL, cfg.PNCP.RatePerSec, cfg.PNCP.RateBurst)

	snap, err := snapshot.Build(ctx, client, cfg, func(msg string) {
		log.Printf("[buildcache] %s", msg)
	})
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := snapshot.Write(out, snap); err != nil {
		log.Fatalf("write failed: %v", err)
	}
	log.Printf("[buildcache] wrote %d items to %s", len(snap.Items), out)
}
