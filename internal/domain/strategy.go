package domain

// Strategy is the external strategy definition: an ordered list of
// allocations (priority = list order) plus the signal definitions they
// reference. Opaque plain data produced outside the engine.
type Strategy struct {
	Name        string                 `json:"name"`
	Signals     []SignalDefinition     `json:"signals"`
	Allocations []AllocationDefinition `json:"allocations"`
}

// EvaluatedStrategy is the engine's output: exactly one active allocation
// as of the evaluation date.
type EvaluatedStrategy struct {
	Name       string              `json:"name"`
	ID         string              `json:"id"`
	Date       string              `json:"date"`
	Allocation EvaluatedAllocation `json:"allocation"`
}
