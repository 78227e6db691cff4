package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/risk"
	"SignalSentinel/internal/scheduler"
	"SignalSentinel/internal/store"
	"SignalSentinel/internal/strategy"
	"SignalSentinel/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("DATA_SOURCE") == "mock" {
		fetcher = &collector.MockFetcher{Price: 2400}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher)

	// Init signal store
	st := store.NewJSONStore(cfg.Store.ActiveFile, cfg.Store.HistoryFile)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init decision pipeline
	sizer := &risk.Sizer{
		Account:     cfg.Account,
		SLMult:      cfg.Strategy.SLATRMult,
		TP1Mult:     cfg.Strategy.TP1ATRMult,
		TP2Mult:     cfg.Strategy.TP2ATRMult,
		TP3Mult:     cfg.Strategy.TP3ATRMult,
		TP3MinScore: cfg.Strategy.TP3MinScore,
	}
	eng := &strategy.Engine{
		ADXFloor:       cfg.Strategy.ADXFloor,
		BodyRatioFloor: cfg.Strategy.BodyRatioFloor,
		VolumeFloor:    cfg.Strategy.VolumeFloor,
		MinScore:       cfg.Strategy.MinScore,
		Sizer:          sizer,
	}

	// Init lifecycle tracker
	run := &tracker.Runner{
		Store:   st,
		Fetcher: col,
		Tracker: &tracker.Tracker{
			Expiry: time.Duration(cfg.Strategy.ExpiryDays) * 24 * time.Hour,
		},
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg, col, eng, st, run, tn, rec)
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] SignalSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalSentinel stopped")
}
