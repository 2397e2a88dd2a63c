package l2_service

import (
	"fmt"

	"tactical/internal/domain"
)

// Cache keys are scoped to the requested evaluation date; paired with a
// TTL that runs out just before the next market close, an entry is valid
// for the remainder of the current trading day only.

func indicatorCacheKey(ticker domain.Ticker, indicatorType domain.IndicatorType, lookback, delay int, date string) string {
	return fmt.Sprintf("indicator:%s:%s(%d)-%d@%s", ticker.Display, indicatorType, lookback, delay, date)
}

// indicatorKeyFragment identifies one indicator definition inside a
// signal key.
// Threshold indicators are literals with no ticker, so they key on their
// configured value instead.
func indicatorKeyFragment(def domain.IndicatorDefinition) string {
	if def.Type == domain.IndicatorThreshold {
		return fmt.Sprintf("%s(%g)", def.Type, def.Value)
	}
	ticker := domain.ParseTicker(def.Ticker)
	return fmt.Sprintf("%s:%s(%d)-%d", ticker.Display, def.Type, def.Lookback, def.Delay)
}

func signalCacheKey(def domain.SignalDefinition, date string) string {
	return fmt.Sprintf(
		"signal:%s%s%s±%g@%s",
		indicatorKeyFragment(def.Indicator1),
		def.Comparison,
		indicatorKeyFragment(def.Indicator2),
		def.Tolerance,
		date,
	)
}
