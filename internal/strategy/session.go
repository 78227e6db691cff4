package strategy

import (
	"time"

	"SignalSentinel/internal/model"
)

// SessionQuality classifies the current time into a liquidity window.
//
// Commodities: London open 02:00-04:59 UTC and New York open 07:00-09:59 UTC
// are kill zones; 20:00-01:59 UTC is the thin Asian dead zone.
// Stocks: the opening 75 minutes are the kill zone; the final half hour is
// thin and choppy.
func SessionQuality(class model.InstrumentClass, now time.Time) model.Session {
	utc := now.UTC()
	minutes := utc.Hour()*60 + utc.Minute()

	if class == model.ClassStock {
		if minutes >= 3*60+45 && minutes <= 5*60 {
			return model.SessionKillZone
		}
		if minutes >= 9*60+30 && minutes <= 10*60 {
			return model.SessionThin
		}
		return model.SessionNormal
	}

	hour := utc.Hour()
	if (hour >= 2 && hour <= 4) || (hour >= 7 && hour <= 9) {
		return model.SessionKillZone
	}
	if hour >= 20 || hour <= 1 {
		return model.SessionThin
	}
	return model.SessionNormal
}
