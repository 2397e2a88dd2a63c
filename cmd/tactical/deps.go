package main

import (
	"context"
	"os"

	"tactical/internal/domain"
	"tactical/internal/logger"
	"tactical/internal/repository"
	l1_service "tactical/internal/service/l1"
	l2_service "tactical/internal/service/l2"
	l3_service "tactical/internal/service/l3"
	"tactical/pkg/fred"
	"tactical/pkg/testfolio"
)

type dependencies struct {
	TestfolioClient testfolio.Client
	StrategyService l3_service.StrategyService
}

// initializeDependencies wires the service layers from environment
// configuration. Redis is optional; without REDIS_ADDR every indicator
// and signal is recomputed on each run.
func initializeDependencies(ctx context.Context) (*dependencies, error) {
	log := logger.FromContext(ctx)

	cache := repository.NewNoOpCacheRepository()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisCache, err := repository.NewRedisCacheRepository(addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Warnf("failed to connect to redis at %s, continuing without cache: %v", addr, err)
		} else {
			cache = redisCache
		}
	}

	quoteRepository := repository.NewYahooQuoteRepository()
	economicDataRepository := repository.NewFredEconomicDataRepository(
		fred.NewClient(os.Getenv("FRED_API_KEY")),
	)

	seriesService := l1_service.NewSeriesService(quoteRepository, economicDataRepository)
	indicatorService := l2_service.NewIndicatorService(seriesService, cache)
	signalService := l2_service.NewSignalService(indicatorService, cache)
	strategyService := l3_service.NewStrategyService(signalService)

	return &dependencies{
		TestfolioClient: testfolio.NewClient(),
		StrategyService: strategyService,
	}, nil
}

// strategyFromDocument converts a raw shared document into the engine's
// strategy form, defaulting the nullable fields the document format
// leaves unset.
func strategyFromDocument(document *testfolio.Strategy) domain.Strategy {
	signals := make([]domain.SignalDefinition, 0, len(document.Signals))
	for _, s := range document.Signals {
		signals = append(signals, domain.SignalDefinition{
			Name:       s.Name,
			Indicator1: indicatorFromDocument(s.Indicator1),
			Comparison: domain.Comparison(s.Comparison),
			Indicator2: indicatorFromDocument(s.Indicator2),
			Tolerance:  valueOrZero(s.Tolerance),
		})
	}

	allocations := make([]domain.AllocationDefinition, 0, len(document.Allocations))
	for _, a := range document.Allocations {
		ops := make([]domain.Operation, 0, len(a.Ops))
		for _, op := range a.Ops {
			ops = append(ops, domain.Operation(op))
		}
		tickers := make([]domain.HoldingDefinition, 0, len(a.Tickers))
		for _, t := range a.Tickers {
			tickers = append(tickers, domain.HoldingDefinition{
				Ticker:  t.Ticker,
				Percent: t.Percent,
			})
		}
		allocations = append(allocations, domain.AllocationDefinition{
			Name:    a.Name,
			Signals: a.Signals,
			Ops:     ops,
			Nots:    a.Nots,
			Tickers: tickers,
		})
	}

	return domain.Strategy{
		Name:        document.Name,
		Signals:     signals,
		Allocations: allocations,
	}
}

func indicatorFromDocument(indicator testfolio.Indicator) domain.IndicatorDefinition {
	return domain.IndicatorDefinition{
		Type:     domain.IndicatorType(indicator.Type),
		Ticker:   indicator.Ticker,
		Value:    valueOrZero(indicator.Value),
		Lookback: valueOrZero(indicator.Lookback),
		Delay:    valueOrZero(indicator.Delay),
	}
}

func valueOrZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
