package domain

type IndicatorType string

const (
	IndicatorSMA        IndicatorType = "SMA"
	IndicatorEMA        IndicatorType = "EMA"
	IndicatorPrice      IndicatorType = "Price"
	IndicatorReturn     IndicatorType = "Return"
	IndicatorVolatility IndicatorType = "Volatility"
	IndicatorDrawdown   IndicatorType = "Drawdown"
	IndicatorRSI        IndicatorType = "RSI"
	IndicatorVIX        IndicatorType = "VIX"
	IndicatorT10Y       IndicatorType = "T10Y"
	IndicatorT2Y        IndicatorType = "T2Y"
	IndicatorT3M        IndicatorType = "T3M"
	IndicatorMonth      IndicatorType = "Month"
	IndicatorDayOfWeek  IndicatorType = "Day of Week"
	IndicatorDayOfMonth IndicatorType = "Day of Month"
	IndicatorDayOfYear  IndicatorType = "Day of Year"
	IndicatorThreshold  IndicatorType = "Threshold"
)

type Unit string

const (
	UnitPercent Unit = "%"
	UnitDollar  Unit = "$"
	UnitNone    Unit = ""
)

// IndicatorDefinition is the declarative form of an indicator inside a
// strategy document. Value is only meaningful for Threshold, Lookback for
// windowed types. Delay shifts which date is evaluated, in calendar days.
type IndicatorDefinition struct {
	Type     IndicatorType `json:"type"`
	Ticker   string        `json:"ticker"`
	Value    float64       `json:"value"`
	Lookback int           `json:"lookback"`
	Delay    int           `json:"delay"`
}

// Indicator is an evaluated indicator: a single numeric measurement, the
// trading day it is effective for, and its unit. Immutable once produced.
type Indicator struct {
	Type     IndicatorType `json:"type"`
	Ticker   Ticker        `json:"ticker"`
	Date     string        `json:"date"`
	Value    float64       `json:"value"`
	Unit     Unit          `json:"unit"`
	Lookback int           `json:"lookback"`
	Delay    int           `json:"delay"`
}
