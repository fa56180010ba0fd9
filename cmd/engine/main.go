package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/events"
	"medvagas-engine/internal/httpapi"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/scheduler"
	"medvagas-engine/internal/search"
	"medvagas-engine/internal/snapshot"
)

func main() {
	// Engine data dir: use env if provided (the panel launcher can pass one),
	// else local folder.
	dataDir := os.Getenv("MEDVAGAS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if kwPath := filepath.Join(dataDir, "keywords.yml"); fileExists(kwPath) {
			if err := config.OverlayKeywords(&cfg, kwPath); err != nil {
				log.Printf("level=warn msg=\"keywords overlay failed\" path=%s err=%v", kwPath, err)
			}
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pncp.NewClient(cfg.PNCP.BaseURL, cfg.PNCP.RatePerSec, cfg.PNCP.RateBurst)
	hub := events.NewHub()

	var searchStatus atomic.Value
	searchStatus.Store(httpapi.SearchStatus{})
	var searchResult atomic.Value

	snapPath := cfg.Snapshot.OutPath
	if snapPath == "" {
		snapPath = filepath.Join(dataDir, "snapshot.json")
	}

	deps := httpapi.Deps{
		Client:       client,
		Hub:          hub,
		CfgVal:       &cfgVal,
		SearchStatus: &searchStatus,
		SearchResult: &searchResult,
		Session:      &search.Session{},
		BaseCtx:      baseCtx,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		SnapshotPath: snapPath,
		Gather:       search.Gather,
	}

	// Background snapshot refresh so the panel has offline data even before
	// the first interactive search.
	if cfg.Snapshot.Enabled && cfg.Snapshot.RefreshMinutes > 0 {
		interval := time.Duration(cfg.Snapshot.RefreshMinutes) * time.Minute
		go scheduler.Every(baseCtx, interval, "snapshot", func(ctx context.Context) error {
			cur := cfgVal.Load().(config.Config)
			snap, err := snapshot.Build(ctx, client, cur, nil)
			if err != nil {
				return err
			}
			if err := snapshot.Write(snapPath, snap); err != nil {
				return err
			}
			hub.Publish(events.MakeEvent("", events.TypeSnapshotDone, 1, map[string]any{
				"items": len(snap.Items), "path": snapPath,
			}))
			return nil
		})
	}

	mux := httpapi.NewMux(deps)

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port <= 0 {
		port = 38471
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s config=%s", addr, userCfgPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-baseCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
