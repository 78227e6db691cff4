package risk

import (
	"errors"
	"math"
	"testing"

	"SignalSentinel/internal/model"
)

func testInstrument() model.Instrument {
	return model.Instrument{
		Symbol:        "GC=F",
		Name:          "Gold Futures",
		Class:         model.ClassCommodity,
		UnitValue:     100,
		MinLot:        0.01,
		MaxLotPer1000: 0.05,
	}
}

func testSizer() *Sizer {
	return &Sizer{
		Account: model.Account{
			Balance:      10000,
			RiskLow:      0.5,
			RiskStandard: 1.0,
			RiskHigh:     1.5,
		},
		SLMult:      1.5,
		TP1Mult:     2.0,
		TP2Mult:     3.0,
		TP3Mult:     4.5,
		TP3MinScore: 8,
	}
}

func TestRiskPercentFor_Tiers(t *testing.T) {
	s := testSizer()
	cases := []struct {
		score int
		want  float64
	}{
		{0, 0.5}, {5, 0.5}, {6, 1.0}, {7, 1.0}, {8, 1.5}, {10, 1.5},
	}
	for _, c := range cases {
		if got := s.RiskPercentFor(c.score); got != c.want {
			t.Errorf("score %d: risk %.1f%%, want %.1f%%", c.score, got, c.want)
		}
	}
}

func TestLotSize_Normal(t *testing.T) {
	s := testSizer()
	// Score 5 -> 0.5% of 10000 = $50 risk. Distance 15 pts at $100/pt.
	sizing, err := s.LotSize(testInstrument(), 2400, 2385, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 50 / (15*100) = 0.0333, floored to the 0.01 increment.
	if math.Abs(sizing.LotSize-0.03) > 1e-9 {
		t.Errorf("lot = %.4f, want 0.03", sizing.LotSize)
	}
	if sizing.WasCapped {
		t.Error("lot should not be capped")
	}
	if sizing.ActualRisk > sizing.RiskAmount {
		t.Errorf("actual risk %.2f exceeds allowance %.2f", sizing.ActualRisk, sizing.RiskAmount)
	}
}

func TestLotSize_HardCap(t *testing.T) {
	s := testSizer()
	// Tiny stop distance would size 3.0 lots; cap is (10000/1000)*0.05 = 0.5.
	sizing, err := s.LotSize(testInstrument(), 2400, 2399.5, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sizing.WasCapped {
		t.Error("expected WasCapped")
	}
	if sizing.LotSize > 0.5 {
		t.Errorf("lot %.2f exceeds cap 0.5", sizing.LotSize)
	}
}

func TestLotSize_CapFlagOnlyWhenExceeded(t *testing.T) {
	s := testSizer()
	// Raw lot exactly below cap must not flag.
	sizing, err := s.LotSize(testInstrument(), 2400, 2385, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sizing.WasCapped {
		t.Error("WasCapped set although raw lot was under the cap")
	}
}

func TestLotSize_MinimumBump(t *testing.T) {
	s := testSizer()
	// Distance 100 pts: raw lot 0.005 floors to 0, bumps to MinLot.
	sizing, err := s.LotSize(testInstrument(), 2400, 2300, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sizing.LotSize != 0.01 {
		t.Errorf("lot = %.4f, want minimum 0.01", sizing.LotSize)
	}
}

func TestLotSize_ZeroStopDistance(t *testing.T) {
	s := testSizer()
	if _, err := s.LotSize(testInstrument(), 2400, 2400, 5); !errors.Is(err, ErrZeroStopDistance) {
		t.Errorf("err = %v, want ErrZeroStopDistance", err)
	}
}

func TestLotSize_MissingMetadata(t *testing.T) {
	s := testSizer()
	inst := testInstrument()
	inst.UnitValue = 0
	if _, err := s.LotSize(inst, 2400, 2385, 5); !errors.Is(err, ErrNoInstrumentMeta) {
		t.Errorf("err = %v, want ErrNoInstrumentMeta", err)
	}
}

func TestTradeLevels_Buy(t *testing.T) {
	s := testSizer()
	levels, err := s.TradeLevels(testInstrument(), 2400, 10, model.Buy, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if levels.StopLoss != 2385 {
		t.Errorf("SL = %.2f, want 2385", levels.StopLoss)
	}
	if levels.TP1 != 2420 || levels.TP2 != 2430 {
		t.Errorf("TP1/TP2 = %.2f/%.2f, want 2420/2430", levels.TP1, levels.TP2)
	}
	if levels.TP3 != 0 {
		t.Errorf("TP3 = %.2f, want unset below score 8", levels.TP3)
	}
	if math.Abs(levels.RRTP1-20.0/15.0) > 1e-9 {
		t.Errorf("RRTP1 = %.4f, want %.4f", levels.RRTP1, 20.0/15.0)
	}
	if levels.RiskPercent != 1.0 {
		t.Errorf("risk percent = %.1f, want 1.0", levels.RiskPercent)
	}
}

func TestTradeLevels_Sell(t *testing.T) {
	s := testSizer()
	levels, err := s.TradeLevels(testInstrument(), 2400, 10, model.Sell, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if levels.StopLoss != 2415 {
		t.Errorf("SL = %.2f, want 2415 above entry", levels.StopLoss)
	}
	if levels.TP1 != 2380 || levels.TP2 != 2370 {
		t.Errorf("TP1/TP2 = %.2f/%.2f, want 2380/2370", levels.TP1, levels.TP2)
	}
}

func TestTradeLevels_TP3Gate(t *testing.T) {
	s := testSizer()
	levels, err := s.TradeLevels(testInstrument(), 2400, 10, model.Buy, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if levels.TP3 != 2445 {
		t.Errorf("TP3 = %.2f, want 2445 at score 8", levels.TP3)
	}
}

func TestTradeLevels_ZeroATR(t *testing.T) {
	s := testSizer()
	if _, err := s.TradeLevels(testInstrument(), 2400, 0, model.Buy, 6); err == nil {
		t.Fatal("expected error for zero ATR")
	}
}

func TestTradeLevels_PotentialAmounts(t *testing.T) {
	s := testSizer()
	levels, err := s.TradeLevels(testInstrument(), 2400, 10, model.Buy, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLoss := levels.SLDistance * 100 * levels.LotSize
	if math.Abs(levels.PotentialLoss-wantLoss) > 1e-9 {
		t.Errorf("potential loss = %.2f, want %.2f", levels.PotentialLoss, wantLoss)
	}
	if levels.PotentialTP2 <= levels.PotentialTP1 {
		t.Error("TP2 payoff should exceed TP1 payoff")
	}
}
