package l1_service

import (
	"fmt"

	"tactical/internal/domain"
)

// ApplyLeverage derives a synthetic daily-compounded leveraged series
// from an underlying close series. The synthetic series is anchored at
// the first raw close; each subsequent point compounds the leveraged
// daily return: synthetic[i] = synthetic[i-1] * (1 + leverage * r[i]).
// Leverage 1 (or an empty series) is the identity.
func ApplyLeverage(series domain.Series, leverage float64) (domain.Series, error) {
	if leverage == 1 || len(series) == 0 {
		return series, nil
	}

	leveraged := make(domain.Series, 1, len(series))
	leveraged[0] = series[0]

	for i := 1; i < len(series); i++ {
		prevClose := series[i-1].Value
		if prevClose == 0 {
			return nil, fmt.Errorf("cannot compute %gx leveraged close on %s: prior close is zero", leverage, series[i].Date)
		}

		dailyReturn := series[i].Value/prevClose - 1
		leveraged = append(leveraged, domain.SeriesPoint{
			Date:  series[i].Date,
			Value: leveraged[i-1].Value * (1 + leverage*dailyReturn),
		})
	}

	return leveraged, nil
}
