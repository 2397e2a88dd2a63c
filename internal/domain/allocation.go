package domain

import "github.com/shopspring/decimal"

type Operation string

const (
	OperationAnd Operation = "AND"
	OperationOr  Operation = "OR"
)

// HoldingDefinition is one ticker/percentage pair inside an allocation.
type HoldingDefinition struct {
	Ticker  string  `json:"ticker"`
	Percent float64 `json:"percent"`
}

// AllocationDefinition guards a set of holdings with a flat boolean
// expression over signal names: s0 [op0] s1 [op1] ... sn-1, with each
// term optionally negated. An allocation with no signal terms is
// unconditionally true and serves as the catch-all default.
type AllocationDefinition struct {
	Name    string              `json:"name"`
	Signals []string            `json:"signals"`
	Ops     []Operation         `json:"ops"`
	Nots    []bool              `json:"nots"`
	Tickers []HoldingDefinition `json:"tickers"`
}

type Holding struct {
	Ticker       Ticker          `json:"ticker"`
	Distribution decimal.Decimal `json:"distribution"`
}

// EvaluatedAllocation is a matched allocation together with the subset of
// signals that satisfied its matched boolean group.
type EvaluatedAllocation struct {
	Name     string    `json:"name"`
	Holdings []Holding `json:"holdings"`
	Signals  []Signal  `json:"signals"`
}
