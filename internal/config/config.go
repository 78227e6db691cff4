package config

import (
	"fmt"
	"os"
	"strconv"

	"SignalSentinel/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		TrackCron   string `yaml:"track_cron"`
		DigestCron  string `yaml:"digest_cron"`
		ArchiveCron string `yaml:"archive_cron"`
	} `yaml:"schedule"`
	Account  model.Account `yaml:"account"`
	Strategy struct {
		ADXFloor       float64 `yaml:"adx_floor"`
		BodyRatioFloor float64 `yaml:"body_ratio_floor"`
		VolumeFloor    float64 `yaml:"volume_floor"`
		MinScore       int     `yaml:"min_score"`
		MinSignals     int     `yaml:"min_signals"` // fallback kicks in below this per scan
		SLATRMult      float64 `yaml:"sl_atr_mult"`
		TP1ATRMult     float64 `yaml:"tp1_atr_mult"`
		TP2ATRMult     float64 `yaml:"tp2_atr_mult"`
		TP3ATRMult     float64 `yaml:"tp3_atr_mult"`
		TP3MinScore    int     `yaml:"tp3_min_score"`
		ExpiryDays     int     `yaml:"expiry_days"`
	} `yaml:"strategy"`
	Store struct {
		ActiveFile  string `yaml:"active_file"`
		HistoryFile string `yaml:"history_file"`
	} `yaml:"store"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Instruments []model.Instrument `yaml:"instruments"`
	Proxy       string             `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ACCOUNT_BALANCE"); v != "" {
		if balance, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.Balance = balance
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("CRON_TRACK"); v != "" {
		cfg.Schedule.TrackCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 5 * * * *" // hourly, 5 min in
	}
	if c.Schedule.TrackCron == "" {
		c.Schedule.TrackCron = "0 35 * * * *" // hourly, offset from scans
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = "0 0 16 * * 1-5"
	}
	if c.Schedule.ArchiveCron == "" {
		c.Schedule.ArchiveCron = "0 0 18 * * 0" // Sunday evening
	}
	if c.Account.Balance == 0 {
		c.Account.Balance = 10000
	}
	if c.Account.RiskLow == 0 {
		c.Account.RiskLow = 0.5
	}
	if c.Account.RiskStandard == 0 {
		c.Account.RiskStandard = 1.0
	}
	if c.Account.RiskHigh == 0 {
		c.Account.RiskHigh = 1.5
	}
	if c.Strategy.ADXFloor == 0 {
		c.Strategy.ADXFloor = 15
	}
	if c.Strategy.BodyRatioFloor == 0 {
		c.Strategy.BodyRatioFloor = 0.30
	}
	if c.Strategy.VolumeFloor == 0 {
		c.Strategy.VolumeFloor = 0.50
	}
	if c.Strategy.MinScore == 0 {
		c.Strategy.MinScore = 4
	}
	if c.Strategy.MinSignals == 0 {
		c.Strategy.MinSignals = 3
	}
	if c.Strategy.SLATRMult == 0 {
		c.Strategy.SLATRMult = 1.5
	}
	if c.Strategy.TP1ATRMult == 0 {
		c.Strategy.TP1ATRMult = 2.0
	}
	if c.Strategy.TP2ATRMult == 0 {
		c.Strategy.TP2ATRMult = 3.0
	}
	if c.Strategy.TP3ATRMult == 0 {
		c.Strategy.TP3ATRMult = 4.5
	}
	if c.Strategy.TP3MinScore == 0 {
		c.Strategy.TP3MinScore = 8
	}
	if c.Strategy.ExpiryDays == 0 {
		c.Strategy.ExpiryDays = 7
	}
	if c.Store.ActiveFile == "" {
		c.Store.ActiveFile = "data/active_signals.json"
	}
	if c.Store.HistoryFile == "" {
		c.Store.HistoryFile = "data/signal_history.json"
	}
	if len(c.Instruments) == 0 {
		c.Instruments = DefaultInstruments()
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Strategy.MinScore <= 3 {
		return fmt.Errorf("strategy.min_score must exceed the fallback cap of 3")
	}
	for _, inst := range c.Instruments {
		if inst.Symbol == "" {
			return fmt.Errorf("instrument with empty symbol")
		}
	}
	return nil
}

// DefaultInstruments covers the core commodity futures the scanner was
// built around. Stocks carry no per-lot value; the sizer treats a unit
// value of 1 as one account-currency unit per share per 1.0 move.
func DefaultInstruments() []model.Instrument {
	return []model.Instrument{
		{
			Symbol: "GC=F", Name: "Gold Futures", Class: model.ClassCommodity,
			Currency: "USD", UnitValue: 100, MinLot: 0.01, MaxLotPer1000: 0.05,
			Timeframe: "1h", ConfirmTimeframe: "4h",
		},
		{
			Symbol: "SI=F", Name: "Silver Futures", Class: model.ClassCommodity,
			Currency: "USD", UnitValue: 5000, MinLot: 0.01, MaxLotPer1000: 0.05,
			Timeframe: "1h", ConfirmTimeframe: "4h",
		},
		{
			Symbol: "CL=F", Name: "Crude Oil Futures", Class: model.ClassCommodity,
			Currency: "USD", UnitValue: 1000, MinLot: 0.01, MaxLotPer1000: 0.05,
			Timeframe: "1h", ConfirmTimeframe: "4h",
		},
	}
}
