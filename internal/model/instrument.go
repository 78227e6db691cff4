package model

// InstrumentClass determines which session-quality windows and sizing
// conventions apply to an instrument.
type InstrumentClass string

const (
	ClassCommodity InstrumentClass = "commodity"
	ClassStock     InstrumentClass = "stock"
)

// Instrument holds the per-contract metadata the risk sizer needs.
type Instrument struct {
	Symbol           string          `yaml:"symbol" json:"symbol"`
	Name             string          `yaml:"name" json:"name"`
	Class            InstrumentClass `yaml:"class" json:"class"`
	Currency         string          `yaml:"currency" json:"currency"`
	UnitValue        float64         `yaml:"unit_value" json:"unit_value"` // account currency per 1.0 price move per lot
	MinLot           float64         `yaml:"min_lot" json:"min_lot"`       // minimum size and size increment
	MaxLotPer1000    float64         `yaml:"max_lot_per_1000" json:"max_lot_per_1000"`
	Timeframe        string          `yaml:"timeframe" json:"timeframe"`
	ConfirmTimeframe string          `yaml:"confirm_timeframe" json:"confirm_timeframe"`
}

// Sizable reports whether enough metadata exists to compute a position size.
// Sizing fails closed without it.
func (i Instrument) Sizable() bool {
	return i.Symbol != "" && i.UnitValue > 0 && i.MinLot > 0
}

// Account holds the balance and the per-score-tier risk percentages.
type Account struct {
	Balance      float64 `yaml:"balance"`
	RiskLow      float64 `yaml:"risk_low"`      // percent, score at or below the low tier
	RiskStandard float64 `yaml:"risk_standard"` // percent, mid-tier scores
	RiskHigh     float64 `yaml:"risk_high"`     // percent, top-tier scores
}
