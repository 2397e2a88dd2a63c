package util

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// US equities close at 4pm ET, 21:00 UTC. The engine treats this single
// cutoff as both the bar-finality boundary and the cache expiry clock so
// cached values and finalized bars roll over together.
const (
	marketCloseHourUTC  = 21
	earliestSeriesStart = "1954-01-01"
)

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// MarketDateString converts any instant to its trading-day identifier.
func MarketDateString(t time.Time) string {
	return t.UTC().Format(layout)
}

func ParseMarketDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid market date %q: %w", date, err)
	}
	return t, nil
}

// DelayDate shifts a trading-day identifier back by d calendar days.
func DelayDate(date string, d int) (string, error) {
	t, err := ParseMarketDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -d).Format(layout), nil
}

// EarliestSeriesStart is the fixed lower boundary for "all available
// history" series requests.
func EarliestSeriesStart() time.Time {
	t, _ := ParseMarketDate(earliestSeriesStart)
	return t
}

// MarketCloseUTC returns the close instant of the given trading day.
func MarketCloseUTC(date string) (time.Time, error) {
	t, err := ParseMarketDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), marketCloseHourUTC, 0, 0, 0, time.UTC), nil
}

// NextCloseExpiry returns the instant just before the next market close:
// 20:59:59 UTC today, or tomorrow if today's close has passed. Values
// cached until then stay valid for the remainder of the evaluation day
// and expire in time to force recomputation at the close.
func NextCloseExpiry(now time.Time) time.Time {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), marketCloseHourUTC-1, 59, 59, 0, time.UTC)
	if now.After(end) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// CacheTTL is the validity window for a value cached at the given
// instant: the seconds remaining until the next close expiry.
func CacheTTL(now time.Time) time.Duration {
	return NextCloseExpiry(now).Sub(now.UTC())
}
