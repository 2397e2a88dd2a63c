package l3_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tactical/internal/domain"
	mock_l2_service "tactical/internal/service/l2/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func signalDef(name string) domain.SignalDefinition {
	return domain.SignalDefinition{
		Name:       name,
		Indicator1: domain.IndicatorDefinition{Type: domain.IndicatorPrice, Ticker: "SPY"},
		Comparison: domain.ComparisonGreater,
		Indicator2: domain.IndicatorDefinition{Type: domain.IndicatorSMA, Ticker: "SPY", Lookback: 200},
	}
}

func newStrategyHandler(t *testing.T) (*strategyServiceHandler, *mock_l2_service.MockSignalService) {
	ctrl := gomock.NewController(t)
	signalService := mock_l2_service.NewMockSignalService(ctrl)
	handler := &strategyServiceHandler{
		SignalService: signalService,
		now: func() time.Time {
			return time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC)
		},
	}
	return handler, signalService
}

func expectSignal(m *mock_l2_service.MockSignalService, def domain.SignalDefinition, isTrue bool) *gomock.Call {
	return m.EXPECT().
		Evaluate(gomock.Any(), def, gomock.Any()).
		Return(&domain.Signal{Name: def.Name, IsTrue: isTrue}, nil)
}

func Test_EvaluateAsOf(t *testing.T) {
	ctx := context.Background()
	date := "2024-03-15"

	t.Run("first matching allocation wins", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		riskOff := signalDef("risk off")
		expectSignal(signalService, riskOff, false)

		strategy := domain.Strategy{
			Name:    "Tactical 60/40",
			Signals: []domain.SignalDefinition{riskOff},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Defensive",
					Signals: []string{"risk off"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
					Tickers: []domain.HoldingDefinition{{Ticker: "TLT", Percent: 100}},
				},
				{
					Name: "Growth",
					Tickers: []domain.HoldingDefinition{
						{Ticker: "SPY", Percent: 60},
						{Ticker: "TLT", Percent: 40},
					},
				},
			},
		}

		result, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.NoError(t, err)
		require.Equal(t, "Tactical 60/40", result.Name)
		require.Equal(t, "abc123", result.ID)
		require.Equal(t, date, result.Date)
		require.Equal(t, "Growth", result.Allocation.Name)
		require.Empty(t, result.Allocation.Signals)

		require.Len(t, result.Allocation.Holdings, 2)
		require.Equal(t, "SPY", result.Allocation.Holdings[0].Ticker.Symbol)
		require.True(t, result.Allocation.Holdings[0].Distribution.Equal(decimal.NewFromInt(60)))
	})

	t.Run("matched allocation reports its satisfying signals", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		riskOff := signalDef("risk off")
		expectSignal(signalService, riskOff, true)

		strategy := domain.Strategy{
			Signals: []domain.SignalDefinition{riskOff},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Defensive",
					Signals: []string{"risk off"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
					Tickers: []domain.HoldingDefinition{{Ticker: "TLT", Percent: 100}},
				},
			},
		}

		result, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.NoError(t, err)
		require.Equal(t, "Untitled Strategy", result.Name)
		require.Equal(t, "Defensive", result.Allocation.Name)
		require.Len(t, result.Allocation.Signals, 1)
		require.Equal(t, "risk off", result.Allocation.Signals[0].Name)
		require.True(t, result.Allocation.Signals[0].IsTrue)
	})

	t.Run("shared signals are evaluated once", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		shared := signalDef("shared")
		other := signalDef("other")
		expectSignal(signalService, shared, false).Times(1)
		expectSignal(signalService, other, true)

		strategy := domain.Strategy{
			Signals: []domain.SignalDefinition{shared, other},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "First",
					Signals: []string{"shared"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
				},
				{
					Name:    "Second",
					Signals: []string{"shared", "other"},
					Ops:     []domain.Operation{domain.OperationOr},
					Nots:    []bool{false, false},
				},
			},
		}

		result, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.NoError(t, err)
		require.Equal(t, "Second", result.Allocation.Name)
	})

	t.Run("no allocations is an error", func(t *testing.T) {
		handler, _ := newStrategyHandler(t)

		_, err := handler.EvaluateAsOf(ctx, domain.Strategy{}, "abc123", date)
		require.ErrorContains(t, err, "at least one allocation")
	})

	t.Run("referencing an undefined signal is an error", func(t *testing.T) {
		handler, _ := newStrategyHandler(t)

		strategy := domain.Strategy{
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Broken",
					Signals: []string{"ghost"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
				},
			},
		}

		_, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.ErrorContains(t, err, `missing signal definition for "ghost"`)
	})

	t.Run("unmatched conditions fall back to the last allocation", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		riskOff := signalDef("risk off")
		vixSpike := signalDef("vix spike")
		expectSignal(signalService, riskOff, false)
		expectSignal(signalService, vixSpike, false)

		strategy := domain.Strategy{
			Signals: []domain.SignalDefinition{riskOff, vixSpike},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Defensive",
					Signals: []string{"risk off"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
					Tickers: []domain.HoldingDefinition{{Ticker: "TLT", Percent: 100}},
				},
				{
					Name:    "Hedged",
					Signals: []string{"vix spike"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
					Tickers: []domain.HoldingDefinition{{Ticker: "GLD", Percent: 100}},
				},
			},
		}

		result, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.NoError(t, err)
		require.Equal(t, "Hedged", result.Allocation.Name)
		require.Empty(t, result.Allocation.Signals)
		require.Len(t, result.Allocation.Holdings, 1)
		require.Equal(t, "GLD", result.Allocation.Holdings[0].Ticker.Symbol)
	})

	t.Run("signal evaluation failures abort the run", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		riskOff := signalDef("risk off")
		signalService.EXPECT().
			Evaluate(gomock.Any(), riskOff, gomock.Any()).
			Return(nil, errors.New("feed unavailable"))

		strategy := domain.Strategy{
			Signals: []domain.SignalDefinition{riskOff},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Defensive",
					Signals: []string{"risk off"},
					Ops:     []domain.Operation{},
					Nots:    []bool{false},
				},
			},
		}

		_, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.ErrorContains(t, err, "feed unavailable")
	})

	t.Run("negated terms select the alternate branch", func(t *testing.T) {
		handler, signalService := newStrategyHandler(t)

		riskOff := signalDef("risk off")
		expectSignal(signalService, riskOff, false)

		strategy := domain.Strategy{
			Signals: []domain.SignalDefinition{riskOff},
			Allocations: []domain.AllocationDefinition{
				{
					Name:    "Growth",
					Signals: []string{"risk off"},
					Ops:     []domain.Operation{},
					Nots:    []bool{true},
					Tickers: []domain.HoldingDefinition{{Ticker: "SPY", Percent: 100}},
				},
			},
		}

		result, err := handler.EvaluateAsOf(ctx, strategy, "abc123", date)
		require.NoError(t, err)
		require.Equal(t, "Growth", result.Allocation.Name)
	})
}

func Test_Evaluate_AnchorsToToday(t *testing.T) {
	ctx := context.Background()
	handler, signalService := newStrategyHandler(t)

	riskOff := signalDef("risk off")
	signalService.EXPECT().
		Evaluate(gomock.Any(), riskOff, "2024-03-15").
		Return(&domain.Signal{Name: "risk off", IsTrue: true}, nil)

	strategy := domain.Strategy{
		Signals: []domain.SignalDefinition{riskOff},
		Allocations: []domain.AllocationDefinition{
			{
				Name:    "Defensive",
				Signals: []string{"risk off"},
				Ops:     []domain.Operation{},
				Nots:    []bool{false},
			},
		},
	}

	result, err := handler.Evaluate(ctx, strategy, "abc123")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", result.Date)
}

func Test_ResolveAllocation(t *testing.T) {
	signals := map[string]domain.Signal{
		"a": {Name: "a", IsTrue: true},
		"b": {Name: "b", IsTrue: false},
	}

	t.Run("empty condition matches with no signals", func(t *testing.T) {
		matched, active, err := ResolveAllocation(domain.AllocationDefinition{Name: "Default"}, signals)
		require.NoError(t, err)
		require.True(t, matched)
		require.Empty(t, active)
	})

	t.Run("matched group returns its signals", func(t *testing.T) {
		def := domain.AllocationDefinition{
			Name:    "Guarded",
			Signals: []string{"a", "b"},
			Ops:     []domain.Operation{domain.OperationAnd},
			Nots:    []bool{false, true},
		}

		matched, active, err := ResolveAllocation(def, signals)
		require.NoError(t, err)
		require.True(t, matched)
		require.Len(t, active, 2)
		require.Equal(t, "a", active[0].Name)
		require.Equal(t, "b", active[1].Name)
	})

	t.Run("unsatisfied condition does not match", func(t *testing.T) {
		def := domain.AllocationDefinition{
			Name:    "Guarded",
			Signals: []string{"b"},
			Ops:     []domain.Operation{},
			Nots:    []bool{false},
		}

		matched, active, err := ResolveAllocation(def, signals)
		require.NoError(t, err)
		require.False(t, matched)
		require.Empty(t, active)
	})
}
