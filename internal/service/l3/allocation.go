package l3_service

import (
	"fmt"

	"tactical/internal/domain"

	"github.com/shopspring/decimal"
)

// ResolveAllocation evaluates one allocation's guard expression against
// the already-evaluated signals. It reports whether the allocation
// matches and, if so, exactly the signals that satisfied the matched
// AND-group, for explainability. An allocation with no signal terms
// matches unconditionally with an empty signal list.
func ResolveAllocation(def domain.AllocationDefinition, signals map[string]domain.Signal) (bool, []domain.Signal, error) {
	condition, err := domain.ParseCondition(def.Signals, def.Ops, def.Nots)
	if err != nil {
		return false, nil, fmt.Errorf("invalid condition on allocation %q: %w", def.Name, err)
	}

	values := make(map[string]bool, len(signals))
	for name, signal := range signals {
		values[name] = signal.IsTrue
	}

	matched, activeNames, err := condition.Evaluate(values)
	if err != nil {
		return false, nil, fmt.Errorf("failed to resolve allocation %q: %w", def.Name, err)
	}
	if !matched {
		return false, nil, nil
	}

	activeSignals := make([]domain.Signal, len(activeNames))
	for i, name := range activeNames {
		activeSignals[i] = signals[name]
	}
	return true, activeSignals, nil
}

func allocationHoldings(def domain.AllocationDefinition) []domain.Holding {
	holdings := make([]domain.Holding, len(def.Tickers))
	for i, t := range def.Tickers {
		holdings[i] = domain.Holding{
			Ticker:       domain.ParseTicker(t.Ticker),
			Distribution: decimal.NewFromFloat(t.Percent),
		}
	}
	return holdings
}
