package l1_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tactical/internal/domain"
	"tactical/internal/repository"
	"tactical/internal/util"
)

// referenceCalendarSymbol supplies the trading calendar for the
// synthetic zero series.
const referenceCalendarSymbol = "SPY"

// SeriesProvider returns a chronologically ascending, date-deduplicated
// series of daily closes for a symbol. A nil length means all available
// history back to the fixed earliest boundary; a non-nil length means
// exactly that many trailing points.
type SeriesProvider interface {
	FetchSeries(ctx context.Context, symbol string, end string, length *int) (domain.Series, error)
}

// InsufficientDataError reports a window request that the backing source
// cannot fill. It is fatal for the enclosing indicator: short series are
// never silently padded.
type InsufficientDataError struct {
	Symbol string
	Have   int
	Want   int
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough series data available for %s: %d out of %d asked", e.Symbol, e.Have, e.Want)
}

type seriesServiceHandler struct {
	QuoteRepository        repository.QuoteRepository
	EconomicDataRepository repository.EconomicDataRepository

	now func() time.Time
}

func NewSeriesService(quoteRepository repository.QuoteRepository, economicDataRepository repository.EconomicDataRepository) SeriesProvider {
	return &seriesServiceHandler{
		QuoteRepository:        quoteRepository,
		EconomicDataRepository: economicDataRepository,
		now:                    time.Now,
	}
}

func (h *seriesServiceHandler) FetchSeries(ctx context.Context, symbol string, end string, length *int) (domain.Series, error) {
	endDate, err := util.ParseMarketDate(end)
	if err != nil {
		return nil, err
	}
	if length != nil && *length < 1 {
		return nil, fmt.Errorf("requested series length for %s must be positive, got %d", symbol, *length)
	}

	start := util.EarliestSeriesStart()
	if length != nil {
		// buffered calendar window: wide enough to absorb weekends and
		// holidays for any requested trailing length
		buffer := *length + 15
		if 2*(*length) > buffer {
			buffer = 2 * (*length)
		}
		start = endDate.AddDate(0, 0, -buffer)
	}

	var series domain.Series
	switch {
	case symbol == domain.ZeroTicker:
		series, err = h.zeroSeries(ctx, start, end)
	case domain.IsEconomicSeries(symbol):
		series, err = h.EconomicDataRepository.GetSeries(ctx, symbol, start, endDate)
	default:
		series, err = h.equitySeries(ctx, symbol, start, end)
	}
	if err != nil {
		return nil, err
	}

	series = normalizeSeries(series)

	if length == nil {
		return series, nil
	}

	index := len(series) - *length
	if index < 0 {
		return nil, InsufficientDataError{Symbol: symbol, Have: len(series), Want: *length}
	}
	return series[index:], nil
}

// equitySeries pulls daily bars through the end date. When end is the
// current day and the market has not yet closed, the end-date bar is not
// final and is replaced with the live quote so real-time reads see an
// up-to-date close.
func (h *seriesServiceHandler) equitySeries(ctx context.Context, symbol string, start time.Time, end string) (domain.Series, error) {
	closeTime, err := util.MarketCloseUTC(end)
	if err != nil {
		return nil, err
	}
	exclusiveEnd := closeTime.AddDate(0, 0, 1)

	bars, err := h.QuoteRepository.DailyBars(ctx, symbol, start, exclusiveEnd)
	if err != nil {
		return nil, err
	}

	series := domain.Series{}
	for _, bar := range bars {
		if !bar.Timestamp.Before(exclusiveEnd) {
			continue
		}
		date := util.MarketDateString(bar.Timestamp)
		if date > end {
			continue
		}
		series = append(series, domain.SeriesPoint{
			Date:  date,
			Value: bar.Close,
		})
	}

	if len(series) == 0 {
		return series, nil
	}

	// bar timestamps are stamped at the session open, so finality is
	// judged by the clock: until the close, the current day's bar is
	// partial (or not yet published) and the live quote stands in for it
	now := h.now()
	if end == util.MarketDateString(now) && now.Before(closeTime) {
		price, err := h.QuoteRepository.LatestQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		point := domain.SeriesPoint{Date: end, Value: price}
		if series[len(series)-1].Date == end {
			series[len(series)-1] = point
		} else {
			series = append(series, point)
		}
	}

	return series, nil
}

// zeroSeries produces a constant-zero series over the reference equity
// calendar, representing a riskless placeholder without a data source.
func (h *seriesServiceHandler) zeroSeries(ctx context.Context, start time.Time, end string) (domain.Series, error) {
	reference, err := h.equitySeries(ctx, referenceCalendarSymbol, start, end)
	if err != nil {
		return nil, err
	}

	series := make(domain.Series, len(reference))
	for i, p := range reference {
		series[i] = domain.SeriesPoint{Date: p.Date}
	}
	return series, nil
}

// normalizeSeries sorts ascending by date and collapses duplicate dates,
// keeping the most recently reported value.
func normalizeSeries(series domain.Series) domain.Series {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	deduped := series[:0]
	for _, p := range series {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date == p.Date {
			deduped[len(deduped)-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}
