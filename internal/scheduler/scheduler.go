package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/store"
	"SignalSentinel/internal/strategy"
	"SignalSentinel/internal/tracker"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Cfg       *config.Config
	Collector *collector.Collector
	Engine    *strategy.Engine
	Store     store.SignalStore
	Runner    *tracker.Runner
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler and hooks the tracker's change callback.
func NewScheduler(ctx context.Context, cfg *config.Config, col *collector.Collector,
	eng *strategy.Engine, st store.SignalStore, run *tracker.Runner,
	tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {

	s := &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cfg:       cfg,
		Collector: col,
		Engine:    eng,
		Store:     st,
		Runner:    run,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
	run.OnChange = s.onStatusChange
	return s
}

// RegisterAll registers the scan, track, digest, and archive tasks.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.Cfg.Schedule.ScanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.Cfg.Schedule.TrackCron, s.trackTask); err != nil {
		return fmt.Errorf("register track task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.Cfg.Schedule.DigestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.Cfg.Schedule.ArchiveCron, s.archiveTask); err != nil {
		return fmt.Errorf("register archive task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running market scan")

	var signals []*model.TradeSignal
	views := make(map[string]*collector.MarketView)

	for _, inst := range s.Cfg.Instruments {
		view, err := s.Collector.Collect(inst)
		if err != nil {
			log.Printf("[WARN] scan %s: %v", inst.Symbol, err)
			continue
		}
		views[inst.Symbol] = view

		if sig := s.Engine.Check(view.Primary, view.Confirm, inst); sig != nil {
			signals = append(signals, sig)
		}
	}

	// Below quota, look for weaker trend opportunities on the quiet instruments.
	if len(signals) < s.Cfg.Strategy.MinSignals {
		taken := make(map[string]bool, len(signals))
		for _, sig := range signals {
			taken[sig.Symbol] = true
		}
		for _, inst := range s.Cfg.Instruments {
			if taken[inst.Symbol] {
				continue
			}
			view, ok := views[inst.Symbol]
			if !ok {
				continue
			}
			if sig := s.Engine.CheckBestOpportunity(view.Primary, inst); sig != nil {
				signals = append(signals, sig)
			}
			if len(signals) >= s.Cfg.Strategy.MinSignals {
				break
			}
		}
	}

	if len(signals) == 0 {
		log.Println("[INFO] scan: no signals")
		return
	}

	sent := 0
	for _, raw := range signals {
		tracked, created, err := s.Store.Append(raw)
		if err != nil {
			log.Printf("[ERROR] store signal %s: %v", raw.Symbol, err)
			continue
		}
		if !created {
			log.Printf("[INFO] scan: %s %s already active, skipping duplicate",
				raw.Symbol, raw.Direction)
			continue
		}
		sent++
		s.trySend(notifier.FormatSignal(tracked))
		if err := s.Recorder.RecordSignal(tracked); err != nil {
			log.Printf("[ERROR] record signal: %v", err)
		}
	}
	log.Printf("[INFO] scan: %d signal(s), %d new", len(signals), sent)
}

func (s *Scheduler) trackTask() {
	log.Println("[INFO] running signal tracking")
	sum, err := s.Runner.Run()
	if err != nil {
		log.Printf("[ERROR] tracking run: %v", err)
		return
	}
	if err := s.Recorder.RecordRunSummary(&sum); err != nil {
		log.Printf("[ERROR] record run summary: %v", err)
	}
	if sum.TP1Hits+sum.TP2Hits+sum.SLHits+sum.Expired > 0 {
		s.trySend(notifier.FormatRunSummary(sum))
	}
}

func (s *Scheduler) onStatusChange(sig *model.TrackedSignal, from model.SignalStatus) {
	s.trySend(notifier.FormatStatusChange(sig, from))
	if err := s.Recorder.RecordStatusChange(&recorder.StatusChange{
		SignalID: sig.ID,
		Symbol:   sig.Symbol,
		From:     from,
		To:       sig.Status,
		Price:    sig.CurrentPrice,
		PnL:      sig.PnLAtClose,
	}); err != nil {
		log.Printf("[ERROR] record status change: %v", err)
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] building daily digest")
	var statuses []*strategy.MarketStatus
	for _, inst := range s.Cfg.Instruments {
		view, err := s.Collector.Collect(inst)
		if err != nil {
			log.Printf("[WARN] digest %s: %v", inst.Symbol, err)
			continue
		}
		statuses = append(statuses, strategy.TrendStatus(view.Primary, inst))
	}
	open, err := s.Store.LoadOpen()
	if err != nil {
		log.Printf("[ERROR] digest load open: %v", err)
		return
	}
	s.trySend(notifier.FormatDigest(statuses, open))
}

func (s *Scheduler) archiveTask() {
	n, err := s.Store.ArchiveResolved()
	if err != nil {
		log.Printf("[ERROR] archive: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] archived %d resolved signal(s)", n)
		s.trySend(fmt.Sprintf("🗄 Archived %d resolved signal(s) to history", n))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.ToLower(command) {
	case "/scan":
		go s.scanTask()
		return "Scanning markets…"
	case "/track":
		go s.trackTask()
		return "Checking open signals…"
	case "/status":
		go s.digestTask()
		return ""
	case "/stats":
		all, err := s.Store.LoadAll()
		if err != nil {
			return fmt.Sprintf("❌ load signals: %v", err)
		}
		return notifier.FormatStats(all)
	default:
		return "Commands:\n• /scan — scan markets now\n• /track — check open signals\n• /status — market digest\n• /stats — outcome statistics"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}
