package domain

type Comparison string

const (
	ComparisonGreater Comparison = ">"
	ComparisonLess    Comparison = "<"
	ComparisonEqual   Comparison = "="
)

// SignalDefinition names a boolean derived from comparing two indicators
// with a tolerance band. Signal names are unique within a strategy.
type SignalDefinition struct {
	Name       string              `json:"name"`
	Indicator1 IndicatorDefinition `json:"indicator_1"`
	Comparison Comparison          `json:"comparison"`
	Indicator2 IndicatorDefinition `json:"indicator_2"`
	Tolerance  float64             `json:"tolerance"`
}

// Signal is an evaluated signal, carrying both evaluated indicators for
// explainability.
type Signal struct {
	Name       string     `json:"name"`
	Indicator1 Indicator  `json:"indicator1"`
	Comparison Comparison `json:"comparison"`
	Indicator2 Indicator  `json:"indicator2"`
	Tolerance  float64    `json:"tolerance"`
	IsTrue     bool       `json:"isTrue"`
}
