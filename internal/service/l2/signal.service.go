package l2_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tactical/internal/domain"
	"tactical/internal/logger"
	"tactical/internal/repository"
	"tactical/internal/util"
)

type SignalService interface {
	// Evaluate compares the definition's two indicators as of the given
	// date and produces the named boolean signal.
	Evaluate(ctx context.Context, def domain.SignalDefinition, date string) (*domain.Signal, error)
}

type signalServiceHandler struct {
	IndicatorService IndicatorService
	CacheRepository  repository.CacheRepository

	now func() time.Time
}

func NewSignalService(indicatorService IndicatorService, cacheRepository repository.CacheRepository) SignalService {
	return &signalServiceHandler{
		IndicatorService: indicatorService,
		CacheRepository:  cacheRepository,
		now:              time.Now,
	}
}

func (h *signalServiceHandler) Evaluate(ctx context.Context, def domain.SignalDefinition, date string) (*domain.Signal, error) {
	log := logger.FromContext(ctx)
	key := signalCacheKey(def, date)

	var cached domain.Signal
	err := h.CacheRepository.Get(ctx, key, &cached)
	if err == nil {
		cached.Name = def.Name
		return &cached, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		log.Warnf("signal cache get failed for %s: %s", key, err.Error())
	}

	indicator1, err := h.IndicatorService.Evaluate(ctx, def.Indicator1, date)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate signal %q: %w", def.Name, err)
	}
	indicator2, err := h.IndicatorService.Evaluate(ctx, def.Indicator2, date)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate signal %q: %w", def.Name, err)
	}

	// a threshold literal takes on the unit of its counterpart so the
	// tolerance band below compares like with like
	if indicator2.Type == domain.IndicatorThreshold {
		indicator2.Unit = indicator1.Unit
	}

	// percent-unit comparisons tolerate an additive band; price-like
	// units tolerate a relative one
	var lowerBound, upperBound float64
	if indicator1.Unit == domain.UnitPercent {
		lowerBound = indicator2.Value - def.Tolerance
		upperBound = indicator2.Value + def.Tolerance
	} else {
		lowerBound = indicator2.Value * (1 - def.Tolerance/100)
		upperBound = indicator2.Value * (1 + def.Tolerance/100)
	}

	var isTrue bool
	switch def.Comparison {
	case domain.ComparisonGreater:
		isTrue = indicator1.Value > lowerBound
	case domain.ComparisonLess:
		isTrue = indicator1.Value < upperBound
	case domain.ComparisonEqual:
		isTrue = lowerBound <= indicator1.Value && indicator1.Value <= upperBound
	default:
		return nil, fmt.Errorf("unknown comparison %q in signal %q", def.Comparison, def.Name)
	}

	signal := &domain.Signal{
		Name:       def.Name,
		Indicator1: *indicator1,
		Comparison: def.Comparison,
		Indicator2: *indicator2,
		Tolerance:  def.Tolerance,
		IsTrue:     isTrue,
	}

	if err := h.CacheRepository.Set(ctx, key, signal, util.CacheTTL(h.now())); err != nil {
		log.Warnf("signal cache set failed for %s: %s", key, err.Error())
	}

	return signal, nil
}
