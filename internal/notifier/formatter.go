package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/strategy"
)

func directionIcon(d model.Direction) string {
	if d == model.Buy {
		return "🟢 BUY"
	}
	return "🔴 SELL"
}

func scoreStars(score int) string {
	full := score / 2
	if full > 5 {
		full = 5
	}
	return strings.Repeat("⭐", full) + fmt.Sprintf(" %d/10", score)
}

// FormatSignal formats one trade signal into a Telegram message.
func FormatSignal(sig *model.TrackedSignal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎯 <b>%s</b> | %s\n", sig.Name, directionIcon(sig.Direction)))
	b.WriteString(fmt.Sprintf("Pattern: %s\n", sig.Pattern))
	b.WriteString(fmt.Sprintf("Score: %s\n", scoreStars(sig.Score)))
	b.WriteString(fmt.Sprintf("Regime: %s | Session: %s\n\n", sig.Regime, sig.Session))

	b.WriteString(fmt.Sprintf("Entry: %.2f\n", sig.Entry))
	b.WriteString(fmt.Sprintf("SL: %.2f (%.2f pts)\n", sig.StopLoss, sig.SLDistance))
	b.WriteString(fmt.Sprintf("TP1: %.2f (RR %.2f)\n", sig.TP1, sig.RRTP1))
	b.WriteString(fmt.Sprintf("TP2: %.2f (RR %.2f)\n", sig.TP2, sig.RRTP2))
	if sig.HasTP3() {
		b.WriteString(fmt.Sprintf("TP3: %.2f (runner)\n", sig.TP3))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("💰 Lot: %.2f", sig.LotSize))
	if sig.WasCapped {
		b.WriteString(" ⚠️ capped")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Risk: $%s (%.1f%%)\n", humanize.Commaf(sig.RiskAmount), sig.RiskPercent))
	b.WriteString(fmt.Sprintf("Max loss: -$%s | TP1: +$%s | TP2: +$%s\n\n",
		humanize.Commaf(sig.PotentialLoss),
		humanize.Commaf(sig.PotentialTP1),
		humanize.Commaf(sig.PotentialTP2)))

	// Exit plan
	b.WriteString("📋 <b>Exit plan:</b>\n")
	if sig.HasTP3() {
		b.WriteString("  50% off at TP1, 40% at TP2, 10% runs to TP3\n")
	} else {
		b.WriteString("  50% off at TP1, 50% at TP2\n")
	}
	b.WriteString("  After TP1: move SL to entry\n")

	b.WriteString(fmt.Sprintf("\nID: <code>%s</code> | %s", sig.ID, sig.CreatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// FormatStatusChange formats a lifecycle transition alert.
func FormatStatusChange(sig *model.TrackedSignal, from model.SignalStatus) string {
	var icon, title string
	switch sig.Status {
	case model.StatusTP1Hit:
		icon, title = "✅", "TP1 HIT"
	case model.StatusTP2Hit:
		icon, title = "🏆", "TP2 HIT"
	case model.StatusSLHit:
		icon, title = "🛑", "STOP HIT"
	case model.StatusExpired:
		icon, title = "⏰", "EXPIRED"
	default:
		icon, title = "ℹ️", string(sig.Status)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> | %s %s\n", icon, title, sig.Name, directionIcon(sig.Direction)))
	b.WriteString(fmt.Sprintf("%s → %s\n", from, sig.Status))
	b.WriteString(fmt.Sprintf("Entry: %.2f → %.2f\n", sig.Entry, sig.CurrentPrice))
	if sig.Status == model.StatusTP1Hit {
		b.WriteString("Move SL to entry for the remaining position\n")
	}
	if sig.Status.Terminal() {
		b.WriteString(fmt.Sprintf("PnL: %+.2f pts (%+.2f%% of entry)\n",
			sig.PnLAtClose, sig.PnLAtClose/sig.Entry*100))
	}
	b.WriteString(fmt.Sprintf("ID: <code>%s</code>", sig.ID))
	return b.String()
}

// FormatDigest formats the daily market digest, one line per instrument.
func FormatDigest(statuses []*strategy.MarketStatus, open []model.TrackedSignal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Daily Digest</b> | %s\n\n", time.Now().UTC().Format("2006-01-02")))

	for _, s := range statuses {
		if s == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>: %.2f | RSI %.0f | %s | %s\n",
			s.Name, s.Close, s.RSI, s.Regime, s.Condition))
	}

	b.WriteString(fmt.Sprintf("\nOpen signals: %d\n", len(open)))
	for _, sig := range open {
		b.WriteString(fmt.Sprintf("  %s %s @ %.2f [%s]\n",
			sig.Symbol, sig.Direction, sig.Entry, sig.Status))
	}
	return b.String()
}

// FormatRunSummary formats a tracking batch result.
func FormatRunSummary(sum model.RunSummary) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Tracking Run</b>\n\n")
	b.WriteString(fmt.Sprintf("Checked: %d\n", sum.Checked))
	b.WriteString(fmt.Sprintf("✅ TP1: %d | 🏆 TP2: %d\n", sum.TP1Hits, sum.TP2Hits))
	b.WriteString(fmt.Sprintf("🛑 SL: %d | ⏰ Expired: %d\n", sum.SLHits, sum.Expired))
	b.WriteString(fmt.Sprintf("Still open: %d\n", sum.StillActive))
	return b.String()
}

// FormatStats formats lifetime outcome statistics from the signal history.
func FormatStats(history []model.TrackedSignal) string {
	var wins, losses, expired int
	var pnlPct float64
	for _, sig := range history {
		switch sig.Status {
		case model.StatusTP2Hit:
			wins++
		case model.StatusSLHit:
			losses++
		case model.StatusExpired:
			expired++
		}
		if sig.Status.Terminal() && sig.Entry > 0 {
			pnlPct += sig.PnLAtClose / sig.Entry * 100
		}
	}

	var b strings.Builder
	b.WriteString("📈 <b>Signal Stats</b>\n\n")
	b.WriteString(fmt.Sprintf("Resolved: %d\n", wins+losses+expired))
	b.WriteString(fmt.Sprintf("🏆 Wins: %d | 🛑 Losses: %d | ⏰ Expired: %d\n", wins, losses, expired))
	if wins+losses > 0 {
		b.WriteString(fmt.Sprintf("Win rate: %.0f%%\n", float64(wins)/float64(wins+losses)*100))
	}
	b.WriteString(fmt.Sprintf("Cumulative move captured: %+.2f%%\n", pnlPct))
	return b.String()
}
