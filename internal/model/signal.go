package model

import "time"

// Direction is the trade side of a signal, fixed at creation.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Pattern names for the strict classifier rules plus the fallback type.
const (
	PatternEMACrossover     = "EMA Crossover"
	PatternBOSBullish       = "BOS Bullish"
	PatternBOSBearish       = "BOS Bearish"
	PatternCHoCHBullish     = "CHoCH Bullish"
	PatternCHoCHBearish     = "CHoCH Bearish"
	PatternSuperTrendFlip   = "SuperTrend Flip"
	PatternIchimokuTKCross  = "Ichimoku TK Cross"
	PatternDonchianBreakout = "Donchian Breakout"
	PatternPullbackBuy      = "Pullback Buy"
	PatternPullbackSell     = "Pullback Sell"
	PatternFVGBuy           = "FVG Buy"
	PatternFVGSell          = "FVG Sell"
	PatternTrendOpportunity = "Trend Opportunity"
)

// SignalStatus is the lifecycle state of a tracked signal.
type SignalStatus string

const (
	StatusActive  SignalStatus = "ACTIVE"
	StatusTP1Hit  SignalStatus = "TP1_HIT"
	StatusTP2Hit  SignalStatus = "TP2_HIT"
	StatusSLHit   SignalStatus = "SL_HIT"
	StatusExpired SignalStatus = "EXPIRED"
)

// Terminal reports whether no further transition is possible.
func (s SignalStatus) Terminal() bool {
	return s == StatusTP2Hit || s == StatusSLHit || s == StatusExpired
}

// Open reports whether the signal still needs price tracking.
// TP1_HIT signals remain open, waiting on TP2 or the stop.
func (s SignalStatus) Open() bool {
	return s == StatusActive || s == StatusTP1Hit
}

// TradeSignal is the decision pipeline's output record.
type TradeSignal struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Class     InstrumentClass `json:"class"`
	Direction Direction       `json:"direction"`
	Pattern   string          `json:"pattern"`
	Score     int             `json:"score"`
	Regime    Regime          `json:"regime"`
	Session   Session         `json:"session"`

	Entry    float64 `json:"entry"`
	StopLoss float64 `json:"stop_loss"`
	TP1      float64 `json:"tp1"`
	TP2      float64 `json:"tp2"`
	TP3      float64 `json:"tp3,omitempty"` // runner target, 0 when not set

	LotSize     float64 `json:"lot_size"`
	RiskAmount  float64 `json:"risk_amount"`
	RiskPercent float64 `json:"risk_percent"`
	SLDistance  float64 `json:"sl_distance"`
	RRTP1       float64 `json:"rr_tp1"`
	RRTP2       float64 `json:"rr_tp2"`

	PotentialLoss float64 `json:"potential_loss"`
	PotentialTP1  float64 `json:"potential_tp1"`
	PotentialTP2  float64 `json:"potential_tp2"`
	WasCapped     bool    `json:"was_capped"`

	ATR      float64 `json:"atr"`
	RSI      float64 `json:"rsi"`
	ADX      float64 `json:"adx,omitempty"`
	VolRatio float64 `json:"vol_ratio,omitempty"`
	Trend    string  `json:"trend"`

	CreatedAt time.Time `json:"created_at"`
}

// HasTP3 reports whether the runner target was assigned.
func (t *TradeSignal) HasTP3() bool { return t.TP3 > 0 }

// TrackedSignal is a TradeSignal under lifecycle tracking. The pipeline
// creates it ACTIVE; only the tracker mutates it afterwards.
type TrackedSignal struct {
	TradeSignal

	ID     string       `json:"signal_id"`
	Status SignalStatus `json:"status"`

	TP1Hit     bool      `json:"tp1_hit"`
	TP1HitTime time.Time `json:"tp1_hit_time,omitzero"`
	TP2Hit     bool      `json:"tp2_hit"`
	TP2HitTime time.Time `json:"tp2_hit_time,omitzero"`
	SLHit      bool      `json:"sl_hit"`
	SLHitTime  time.Time `json:"sl_hit_time,omitzero"`

	CurrentPrice float64 `json:"current_price"`
	HighestPrice float64 `json:"highest_price"`
	LowestPrice  float64 `json:"lowest_price"`
	MaxFavorable float64 `json:"max_favorable"`
	MaxAdverse   float64 `json:"max_adverse"`

	LastChecked time.Time `json:"last_checked,omitzero"`
	ChecksCount int       `json:"checks_count"`
	PnLAtClose  float64   `json:"pnl_at_close"`
}

// RunSummary counts the outcomes of one tracking batch.
type RunSummary struct {
	RanAt       time.Time `json:"ran_at"`
	Checked     int       `json:"checked"`
	TP1Hits     int       `json:"tp1_hits"`
	TP2Hits     int       `json:"tp2_hits"`
	SLHits      int       `json:"sl_hits"`
	Expired     int       `json:"expired"`
	StillActive int       `json:"still_active"`
}
