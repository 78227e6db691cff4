package risk

import (
	"errors"
	"math"

	"SignalSentinel/internal/model"
)

var (
	// ErrZeroStopDistance means entry and stop coincide; sizing never guesses.
	ErrZeroStopDistance = errors.New("stop distance is zero")
	// ErrNoInstrumentMeta means contract metadata is missing; sizing fails closed.
	ErrNoInstrumentMeta = errors.New("instrument metadata unavailable")
)

// Sizer converts entry/stop/targets and account settings into a
// safety-capped position size.
type Sizer struct {
	Account model.Account

	// ATR multipliers for stop and targets.
	SLMult  float64
	TP1Mult float64
	TP2Mult float64
	TP3Mult float64

	// Runner target only attaches at or above this score.
	TP3MinScore int
}

// Sizing is the raw position-size result before targets are attached.
type Sizing struct {
	LotSize    float64
	RiskAmount float64
	ActualRisk float64
	SLDistance float64
	MaxLot     float64
	WasCapped  bool
}

// TradeLevels is the complete stop/target/size plan for one signal.
type TradeLevels struct {
	Entry       float64
	StopLoss    float64
	TP1         float64
	TP2         float64
	TP3         float64 // 0 when the runner target is not assigned
	SLDistance  float64
	LotSize     float64
	RiskAmount  float64
	RiskPercent float64
	RRTP1       float64
	RRTP2       float64

	PotentialLoss float64
	PotentialTP1  float64
	PotentialTP2  float64
	WasCapped     bool
}

// RiskPercentFor maps a signal score to its risk tier.
func (s *Sizer) RiskPercentFor(score int) float64 {
	switch {
	case score >= 8:
		return s.Account.RiskHigh
	case score >= 6:
		return s.Account.RiskStandard
	}
	return s.Account.RiskLow
}

// LotSize computes a safe position size for the given entry and stop.
// The hard cap (balance/1000 x max-lot-per-1000) is never exceeded;
// WasCapped is set exactly when the uncapped size would have exceeded it.
func (s *Sizer) LotSize(inst model.Instrument, entry, stop float64, score int) (*Sizing, error) {
	slDistance := math.Abs(entry - stop)
	if slDistance == 0 {
		return nil, ErrZeroStopDistance
	}
	if !inst.Sizable() {
		return nil, ErrNoInstrumentMeta
	}

	riskPct := s.RiskPercentFor(score)
	riskAmount := s.Account.Balance * riskPct / 100.0

	rawLot := riskAmount / (slDistance * inst.UnitValue)

	// Floor to the instrument's minimum increment, never below the minimum.
	lot := math.Floor(rawLot/inst.MinLot) * inst.MinLot
	if lot < inst.MinLot {
		lot = inst.MinLot
	}

	sizing := &Sizing{
		RiskAmount: riskAmount,
		SLDistance: slDistance,
	}

	if inst.MaxLotPer1000 > 0 {
		maxLot := (s.Account.Balance / 1000.0) * inst.MaxLotPer1000
		sizing.MaxLot = maxLot
		sizing.WasCapped = rawLot > maxLot
		if lot > maxLot {
			lot = math.Floor(maxLot/inst.MinLot) * inst.MinLot
		}
	}

	sizing.LotSize = lot
	sizing.ActualRisk = slDistance * inst.UnitValue * lot
	return sizing, nil
}

// TradeLevels derives stop, targets and size from entry price and the
// volatility unit. Targets sit at fixed ATR multiples; the runner target is
// gated by score. Returns an error (and no levels) when sizing fails.
func (s *Sizer) TradeLevels(inst model.Instrument, entry, atr float64, dir model.Direction, score int) (*TradeLevels, error) {
	if atr <= 0 {
		return nil, ErrZeroStopDistance
	}

	sign := 1.0
	if dir == model.Sell {
		sign = -1.0
	}
	stop := entry - sign*s.SLMult*atr
	tp1 := entry + sign*s.TP1Mult*atr
	tp2 := entry + sign*s.TP2Mult*atr

	sizing, err := s.LotSize(inst, entry, stop, score)
	if err != nil {
		return nil, err
	}

	slDistance := sizing.SLDistance
	tp1Distance := math.Abs(entry - tp1)
	tp2Distance := math.Abs(entry - tp2)

	levels := &TradeLevels{
		Entry:       entry,
		StopLoss:    stop,
		TP1:         tp1,
		TP2:         tp2,
		SLDistance:  slDistance,
		LotSize:     sizing.LotSize,
		RiskAmount:  sizing.RiskAmount,
		RiskPercent: s.RiskPercentFor(score),
		RRTP1:       tp1Distance / slDistance,
		RRTP2:       tp2Distance / slDistance,

		PotentialLoss: slDistance * inst.UnitValue * sizing.LotSize,
		PotentialTP1:  tp1Distance * inst.UnitValue * sizing.LotSize,
		PotentialTP2:  tp2Distance * inst.UnitValue * sizing.LotSize,
		WasCapped:     sizing.WasCapped,
	}
	if score >= s.TP3MinScore {
		levels.TP3 = entry + sign*s.TP3Mult*atr
	}
	return levels, nil
}
