package l3_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tactical/internal/domain"
	l2_service "tactical/internal/service/l2"
	"tactical/internal/util"
)

const numSignalWorkers = 10

type StrategyService interface {
	// Evaluate resolves which allocation currently applies, anchored to
	// the present trading day.
	Evaluate(ctx context.Context, strategy domain.Strategy, id string) (*domain.EvaluatedStrategy, error)
	// EvaluateAsOf is Evaluate anchored to a caller-supplied trading day.
	EvaluateAsOf(ctx context.Context, strategy domain.Strategy, id string, date string) (*domain.EvaluatedStrategy, error)
}

type strategyServiceHandler struct {
	SignalService l2_service.SignalService

	now func() time.Time
}

func NewStrategyService(signalService l2_service.SignalService) StrategyService {
	return &strategyServiceHandler{
		SignalService: signalService,
		now:           time.Now,
	}
}

func (h *strategyServiceHandler) Evaluate(ctx context.Context, strategy domain.Strategy, id string) (*domain.EvaluatedStrategy, error) {
	return h.EvaluateAsOf(ctx, strategy, id, util.MarketDateString(h.now()))
}

func (h *strategyServiceHandler) EvaluateAsOf(ctx context.Context, strategy domain.Strategy, id string, date string) (*domain.EvaluatedStrategy, error) {
	if len(strategy.Allocations) == 0 {
		return nil, fmt.Errorf("strategy must include at least one allocation")
	}

	definitions := make(map[string]domain.SignalDefinition, len(strategy.Signals))
	for _, def := range strategy.Signals {
		definitions[def.Name] = def
	}

	// signals already evaluated during this call; a signal shared by
	// multiple allocations is computed at most once regardless of cache
	// state
	memo := newSignalMemo()

	for _, allocationDef := range strategy.Allocations {
		condition, err := domain.ParseCondition(allocationDef.Signals, allocationDef.Ops, allocationDef.Nots)
		if err != nil {
			return nil, fmt.Errorf("invalid condition on allocation %q: %w", allocationDef.Name, err)
		}

		needed := []domain.SignalDefinition{}
		for _, name := range condition.SignalNames() {
			if memo.has(name) {
				continue
			}
			def, ok := definitions[name]
			if !ok {
				return nil, fmt.Errorf("missing signal definition for %q", name)
			}
			needed = append(needed, def)
		}

		if err := h.evaluateSignals(ctx, needed, date, memo); err != nil {
			return nil, err
		}

		matched, activeSignals, err := ResolveAllocation(allocationDef, memo.snapshot())
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		return evaluatedStrategy(strategy, id, date, allocationDef, activeSignals), nil
	}

	// no condition held; the last allocation stands in as the default
	last := strategy.Allocations[len(strategy.Allocations)-1]
	return evaluatedStrategy(strategy, id, date, last, []domain.Signal{}), nil
}

func evaluatedStrategy(strategy domain.Strategy, id, date string, allocationDef domain.AllocationDefinition, activeSignals []domain.Signal) *domain.EvaluatedStrategy {
	name := strategy.Name
	if name == "" {
		name = "Untitled Strategy"
	}
	return &domain.EvaluatedStrategy{
		Name: name,
		ID:   id,
		Date: date,
		Allocation: domain.EvaluatedAllocation{
			Name:     allocationDef.Name,
			Holdings: allocationHoldings(allocationDef),
			Signals:  activeSignals,
		},
	}
}

// evaluateSignals fans out the not-yet-memoized signals of one
// allocation. Distinct signals carry no serial dependency, so they are
// evaluated concurrently and joined before the allocation is resolved.
func (h *strategyServiceHandler) evaluateSignals(ctx context.Context, needed []domain.SignalDefinition, date string, memo *signalMemo) error {
	if len(needed) == 0 {
		return nil
	}

	inputCh := make(chan domain.SignalDefinition, len(needed))
	errCh := make(chan error, len(needed))
	var wg sync.WaitGroup
	for _, def := range needed {
		wg.Add(1)
		inputCh <- def
	}
	close(inputCh)

	numWorkers := numSignalWorkers
	if len(needed) < numWorkers {
		numWorkers = len(needed)
	}

	for i := 0; i < numWorkers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					for range inputCh {
						errCh <- ctx.Err()
						wg.Done()
					}
					return
				case def, ok := <-inputCh:
					if !ok {
						return
					}
					signal, err := h.SignalService.Evaluate(ctx, def, date)
					if err == nil {
						memo.add(*signal)
					}
					errCh <- err
					wg.Done()
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// signalMemo is the per-call signal map: append-only, safe under
// concurrent insertion of distinct keys; an entry is never overwritten.
type signalMemo struct {
	mu      sync.RWMutex
	signals map[string]domain.Signal
}

func newSignalMemo() *signalMemo {
	return &signalMemo{signals: map[string]domain.Signal{}}
}

func (m *signalMemo) has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.signals[name]
	return ok
}

func (m *signalMemo) add(signal domain.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.signals[signal.Name]; ok {
		return
	}
	m.signals[signal.Name] = signal
}

func (m *signalMemo) snapshot() map[string]domain.Signal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]domain.Signal, len(m.signals))
	for name, signal := range m.signals {
		out[name] = signal
	}
	return out
}
