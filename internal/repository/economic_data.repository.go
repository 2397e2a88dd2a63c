package repository

import (
	"context"
	"strconv"
	"time"

	"tactical/internal/domain"
	"tactical/pkg/fred"
)

// EconomicDataRepository serves macro-economic series (risk-free-rate
// proxies, inflation index) as date/value pairs.
type EconomicDataRepository interface {
	GetSeries(ctx context.Context, seriesID string, start, end time.Time) (domain.Series, error)
}

type fredEconomicDataRepositoryHandler struct {
	Client fred.Client
}

func NewFredEconomicDataRepository(client fred.Client) EconomicDataRepository {
	return fredEconomicDataRepositoryHandler{Client: client}
}

func (h fredEconomicDataRepositoryHandler) GetSeries(ctx context.Context, seriesID string, start, end time.Time) (domain.Series, error) {
	observations, err := h.Client.GetObservations(ctx, seriesID, start, end)
	if err != nil {
		return nil, err
	}

	series := domain.Series{}
	for _, obs := range observations {
		// missing observations come through as "."
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		series = append(series, domain.SeriesPoint{
			Date:  obs.Date,
			Value: value,
		})
	}

	return series, nil
}
