package l2_service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tactical/internal/domain"
	"tactical/internal/logger"
	"tactical/internal/repository"
	l1_service "tactical/internal/service/l1"
	"tactical/internal/util"

	"github.com/montanaflynn/stats"
)

// fixed reference symbols for the rate/volatility-index indicator types
const (
	vixSymbol  = "^VIX"
	t10ySymbol = "^TNX"
	t2ySymbol  = "2YY=F"
	t3mSymbol  = "^IRX"
)

// annualization factor for daily-return volatility (252 trading days)
var annualize = math.Sqrt(252)

type IndicatorService interface {
	// Evaluate computes a single indicator value, its effective trading
	// day and its unit, as of the given date. Delay in the definition
	// shifts which date is evaluated before any windowing happens.
	Evaluate(ctx context.Context, def domain.IndicatorDefinition, date string) (*domain.Indicator, error)
}

type indicatorServiceHandler struct {
	SeriesService   l1_service.SeriesProvider
	CacheRepository repository.CacheRepository

	now func() time.Time
}

func NewIndicatorService(seriesService l1_service.SeriesProvider, cacheRepository repository.CacheRepository) IndicatorService {
	return &indicatorServiceHandler{
		SeriesService:   seriesService,
		CacheRepository: cacheRepository,
		now:             time.Now,
	}
}

func (h *indicatorServiceHandler) Evaluate(ctx context.Context, def domain.IndicatorDefinition, date string) (*domain.Indicator, error) {
	ticker := domain.ParseTicker(def.Ticker)

	// a pure literal: no data, no cache entry
	if def.Type == domain.IndicatorThreshold {
		return &domain.Indicator{
			Type:     def.Type,
			Ticker:   ticker,
			Date:     date,
			Value:    def.Value,
			Unit:     domain.UnitNone,
			Lookback: def.Lookback,
			Delay:    def.Delay,
		}, nil
	}

	log := logger.FromContext(ctx)
	key := indicatorCacheKey(ticker, def.Type, def.Lookback, def.Delay, date)

	var cached domain.Indicator
	err := h.CacheRepository.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		log.Warnf("indicator cache get failed for %s: %s", key, err.Error())
	}

	delayed, err := util.DelayDate(date, def.Delay)
	if err != nil {
		return nil, err
	}

	value, effectiveDate, err := h.compute(ctx, def, ticker, delayed)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s for %q: %w", def.Type, ticker.Display, err)
	}

	result := &domain.Indicator{
		Type:     def.Type,
		Ticker:   ticker,
		Date:     effectiveDate,
		Value:    value,
		Unit:     indicatorUnit(def.Type),
		Lookback: def.Lookback,
		Delay:    def.Delay,
	}

	if err := h.CacheRepository.Set(ctx, key, result, util.CacheTTL(h.now())); err != nil {
		log.Warnf("indicator cache set failed for %s: %s", key, err.Error())
	}

	return result, nil
}

func (h *indicatorServiceHandler) compute(ctx context.Context, def domain.IndicatorDefinition, ticker domain.Ticker, date string) (float64, string, error) {
	switch def.Type {
	case domain.IndicatorSMA, domain.IndicatorEMA, domain.IndicatorReturn,
		domain.IndicatorVolatility, domain.IndicatorRSI:
		if def.Lookback < 1 {
			return 0, "", fmt.Errorf("%s requires a positive lookback, got %d", def.Type, def.Lookback)
		}
	}

	switch def.Type {
	case domain.IndicatorSMA:
		return h.sma(ctx, ticker, date, def.Lookback)
	case domain.IndicatorEMA:
		return h.ema(ctx, ticker, date, def.Lookback)
	case domain.IndicatorPrice:
		return h.price(ctx, ticker.Symbol, date)
	case domain.IndicatorReturn:
		return h.returnFrom(ctx, ticker, date, def.Lookback)
	case domain.IndicatorVolatility:
		return h.volatility(ctx, ticker, date, def.Lookback)
	case domain.IndicatorDrawdown:
		return h.drawdown(ctx, ticker, date)
	case domain.IndicatorRSI:
		return h.rsi(ctx, ticker, date, def.Lookback)
	case domain.IndicatorVIX:
		return h.price(ctx, vixSymbol, date)
	case domain.IndicatorT10Y:
		return h.price(ctx, t10ySymbol, date)
	case domain.IndicatorT2Y:
		return h.price(ctx, t2ySymbol, date)
	case domain.IndicatorT3M:
		return h.price(ctx, t3mSymbol, date)
	case domain.IndicatorMonth, domain.IndicatorDayOfWeek, domain.IndicatorDayOfMonth, domain.IndicatorDayOfYear:
		return calendarValue(def.Type, date)
	}
	return 0, "", fmt.Errorf("unknown indicator type %q", def.Type)
}

// leveragedWindow fetches a trailing window of the ticker's closes and
// applies its leverage multiplier.
func (h *indicatorServiceHandler) leveragedWindow(ctx context.Context, ticker domain.Ticker, date string, length *int) (domain.Series, error) {
	series, err := h.SeriesService.FetchSeries(ctx, ticker.Symbol, date, length)
	if err != nil {
		return nil, err
	}
	return l1_service.ApplyLeverage(series, ticker.Leverage)
}

func (h *indicatorServiceHandler) sma(ctx context.Context, ticker domain.Ticker, date string, lookback int) (float64, string, error) {
	series, err := h.leveragedWindow(ctx, ticker, date, &lookback)
	if err != nil {
		return 0, "", err
	}

	mean, err := stats.Mean(series.Values())
	if err != nil {
		return 0, "", err
	}
	return mean, series[len(series)-1].Date, nil
}

func (h *indicatorServiceHandler) ema(ctx context.Context, ticker domain.Ticker, date string, lookback int) (float64, string, error) {
	series, err := h.leveragedWindow(ctx, ticker, date, &lookback)
	if err != nil {
		return 0, "", err
	}

	alpha := 2.0 / (float64(lookback) + 1)
	return smooth(series.Values(), alpha), series[len(series)-1].Date, nil
}

func (h *indicatorServiceHandler) price(ctx context.Context, symbol string, date string) (float64, string, error) {
	length := 1
	series, err := h.SeriesService.FetchSeries(ctx, symbol, date, &length)
	if err != nil {
		return 0, "", err
	}
	return series[0].Value, series[0].Date, nil
}

func (h *indicatorServiceHandler) returnFrom(ctx context.Context, ticker domain.Ticker, date string, lookback int) (float64, string, error) {
	// lookback+1 points: the return from N days ago needs the close N+1
	// observations back as the base
	length := lookback + 1
	series, err := h.leveragedWindow(ctx, ticker, date, &length)
	if err != nil {
		return 0, "", err
	}

	base := series[0].Value
	if base == 0 {
		return 0, "", fmt.Errorf("base price on %s is zero", series[0].Date)
	}
	last := series[len(series)-1]
	return percentChange(base, last.Value), last.Date, nil
}

func (h *indicatorServiceHandler) volatility(ctx context.Context, ticker domain.Ticker, date string, lookback int) (float64, string, error) {
	length := lookback + 1
	series, err := h.leveragedWindow(ctx, ticker, date, &length)
	if err != nil {
		return 0, "", err
	}

	returns, err := relativeChanges(series)
	if err != nil {
		return 0, "", err
	}
	// sample stdev of daily returns, annualized over 252 trading days
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, "", err
	}
	return sd * annualize * 100, series[len(series)-1].Date, nil
}

func (h *indicatorServiceHandler) drawdown(ctx context.Context, ticker domain.Ticker, date string) (float64, string, error) {
	// drawdown is measured against the peak of the entire available
	// history, not a trailing window
	series, err := h.leveragedWindow(ctx, ticker, date, nil)
	if err != nil {
		return 0, "", err
	}
	if len(series) == 0 {
		return 0, "", l1_service.InsufficientDataError{Symbol: ticker.Symbol, Have: 0, Want: 1}
	}

	peak, err := stats.Max(series.Values())
	if err != nil {
		return 0, "", err
	}
	if peak == 0 {
		return 0, "", fmt.Errorf("peak close is zero")
	}

	last := series[len(series)-1]
	return math.Abs(percentChange(peak, last.Value)), last.Date, nil
}

func (h *indicatorServiceHandler) rsi(ctx context.Context, ticker domain.Ticker, date string, lookback int) (float64, string, error) {
	length := lookback + 1
	series, err := h.leveragedWindow(ctx, ticker, date, &length)
	if err != nil {
		return 0, "", err
	}

	values := series.Values()
	gains := make([]float64, 0, len(values)-1)
	losses := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta >= 0 {
			gains = append(gains, delta)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -delta)
		}
	}

	// Wilder smoothing
	alpha := 1.0 / float64(lookback)
	avgGain := smooth(gains, alpha)
	avgLoss := smooth(losses, alpha)

	last := series[len(series)-1].Date
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, last, nil
		}
		return 100, last, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), last, nil
}

func calendarValue(indicatorType domain.IndicatorType, date string) (float64, string, error) {
	t, err := util.ParseMarketDate(date)
	if err != nil {
		return 0, "", err
	}

	switch indicatorType {
	case domain.IndicatorMonth:
		return float64(t.Month()), date, nil
	case domain.IndicatorDayOfWeek:
		return float64(t.Weekday()), date, nil
	case domain.IndicatorDayOfMonth:
		return float64(t.Day()), date, nil
	case domain.IndicatorDayOfYear:
		return float64(t.YearDay()), date, nil
	}
	return 0, "", fmt.Errorf("unknown calendar indicator type %q", indicatorType)
}

func indicatorUnit(indicatorType domain.IndicatorType) domain.Unit {
	switch indicatorType {
	case domain.IndicatorSMA, domain.IndicatorEMA, domain.IndicatorPrice,
		domain.IndicatorVIX, domain.IndicatorT10Y, domain.IndicatorT2Y, domain.IndicatorT3M:
		return domain.UnitDollar
	case domain.IndicatorReturn, domain.IndicatorVolatility, domain.IndicatorDrawdown:
		return domain.UnitPercent
	}
	return domain.UnitNone
}

func percentChange(from, to float64) float64 {
	return (to - from) / from * 100
}

// smooth runs an exponential recursion over values, seeded with the
// earliest one: v = value*alpha + v*(1-alpha).
func smooth(values []float64, alpha float64) float64 {
	v := values[0]
	for _, value := range values[1:] {
		v = value*alpha + v*(1-alpha)
	}
	return v
}

func relativeChanges(series domain.Series) ([]float64, error) {
	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Value
		if prev == 0 {
			return nil, fmt.Errorf("cannot compute daily return on %s: prior close is zero", series[i].Date)
		}
		changes = append(changes, series[i].Value/prev-1)
	}
	return changes, nil
}
