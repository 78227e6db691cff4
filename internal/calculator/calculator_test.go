package calculator

import (
	"math"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("SMA = %.2f, want 4 over the last three values", got)
	}

	if _, err := SMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestEMASeries_ConstantInput(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100
	}
	out, err := EMASeries(values, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out[len(out)-1]-100) > 1e-9 {
		t.Errorf("EMA of a constant series = %.4f, want 100", out[len(out)-1])
	}
}

func TestEMASeries_TracksTrend(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	fast, _ := EMASeries(values, 10)
	slow, _ := EMASeries(values, 30)
	if fast[len(fast)-1] <= slow[len(slow)-1] {
		t.Error("fast EMA should lead the slow EMA in a rising series")
	}
}

func TestRSI_Extremes(t *testing.T) {
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	rsi, err := RSI(rising, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("RSI of a pure uptrend = %.2f, want 100", rsi)
	}

	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 130 - float64(i)
	}
	rsi, _ = RSI(falling, 14)
	if rsi > 5 {
		t.Errorf("RSI of a pure downtrend = %.2f, want near 0", rsi)
	}
}

func TestRSI_InsufficientDataDefaults(t *testing.T) {
	rsi, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50 {
		t.Errorf("RSI with short input = %.2f, want neutral 50", rsi)
	}
}

func flatBars(n int, price, spread float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time:   t0.Add(time.Duration(i) * time.Hour),
			Open:   price,
			High:   price + spread,
			Low:    price - spread,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func TestATR_ConstantRange(t *testing.T) {
	bars := flatBars(30, 100, 1) // every true range is 2
	atr, err := ATR(bars, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(atr-2) > 1e-9 {
		t.Errorf("ATR = %.4f, want 2", atr)
	}
}

func TestDonchianChannel_ExcludesLatestBar(t *testing.T) {
	bars := flatBars(30, 100, 1)
	// Latest bar spikes; the prior channel must not include it.
	bars[len(bars)-1].High = 120
	bars[len(bars)-1].Close = 119

	upper, lower, err := DonchianChannel(bars, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper != 101 || lower != 99 {
		t.Errorf("channel = %.2f/%.2f, want 101/99 from the prior bars", upper, lower)
	}
}

func TestBuildSnapshot_FlatMarket(t *testing.T) {
	snap, err := BuildSnapshot(flatBars(120, 100, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Ready() {
		t.Fatal("snapshot should be ready")
	}
	if snap.Trend != 0 {
		t.Errorf("trend = %d, want flat", snap.Trend)
	}
	if snap.EMACross != 0 {
		t.Errorf("cross = %d, want none", snap.EMACross)
	}
	if snap.DonBreakout != 0 {
		t.Errorf("breakout = %d, want none", snap.DonBreakout)
	}
	if !model.HasValue(snap.VolRatio) || math.Abs(snap.VolRatio-1) > 1e-9 {
		t.Errorf("vol ratio = %.4f, want 1", snap.VolRatio)
	}
	// Richer feed-level flags stay unavailable from bars alone.
	if model.HasValue(snap.ADX) || model.HasValue(snap.MACDHist) {
		t.Error("ADX and MACD must stay unavailable from a bare price feed")
	}
}

func TestBuildSnapshot_DetectsUptrend(t *testing.T) {
	bars := flatBars(120, 100, 1)
	for i := range bars {
		drift := float64(i) * 0.5
		bars[i].Open += drift
		bars[i].High += drift
		bars[i].Low += drift
		bars[i].Close += drift
	}
	snap, err := BuildSnapshot(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Trend != 1 {
		t.Errorf("trend = %d, want bullish", snap.Trend)
	}
	if snap.RSI <= 50 {
		t.Errorf("RSI = %.2f, want above 50 in an uptrend", snap.RSI)
	}
}

func TestBuildSnapshot_ChannelBreakout(t *testing.T) {
	bars := flatBars(120, 100, 1)
	last := &bars[len(bars)-1]
	last.High = 106
	last.Close = 105 // clears the prior channel top at 101

	snap, err := BuildSnapshot(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.DonBreakout != 1 {
		t.Errorf("breakout = %d, want bullish channel break", snap.DonBreakout)
	}
}

func TestBuildSnapshot_TooFewBars(t *testing.T) {
	if _, err := BuildSnapshot(flatBars(30, 100, 1)); err == nil {
		t.Error("expected error for too few bars")
	}
}
