package domain

import "fmt"

// Term is one signal reference inside an allocation condition, optionally
// negated.
type Term struct {
	Signal  string
	Negated bool
}

// Group is a maximal run of AND-joined terms. It is satisfied only when
// every term in it holds.
type Group []Term

// Condition is an allocation's guard expression in OR-of-AND-groups form.
// AND binds tighter than OR, and the first fully satisfied group (by
// position) wins. An empty condition is unconditionally true.
type Condition []Group

// ParseCondition reconstructs the flat (signals, ops, nots) triple of an
// allocation definition into a condition tree. It enforces the shape
// invariants: len(ops) == len(signals)-1 and len(nots) == len(signals).
func ParseCondition(signals []string, ops []Operation, nots []bool) (Condition, error) {
	if len(signals) == 0 {
		return Condition{}, nil
	}
	if len(ops) != len(signals)-1 {
		return nil, fmt.Errorf("condition has %d signals but %d operators", len(signals), len(ops))
	}
	if len(nots) != len(signals) {
		return nil, fmt.Errorf("condition has %d signals but %d negation flags", len(signals), len(nots))
	}

	condition := Condition{}
	group := Group{{Signal: signals[0], Negated: nots[0]}}
	for i, op := range ops {
		switch op {
		case OperationAnd:
		case OperationOr:
			condition = append(condition, group)
			group = Group{}
		default:
			return nil, fmt.Errorf("unknown operator %q in condition", op)
		}
		group = append(group, Term{Signal: signals[i+1], Negated: nots[i+1]})
	}

	return append(condition, group), nil
}

// SignalNames returns the distinct signal names the condition references,
// in first-appearance order.
func (c Condition) SignalNames() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, group := range c {
		for _, term := range group {
			if !seen[term.Signal] {
				seen[term.Signal] = true
				names = append(names, term.Signal)
			}
		}
	}
	return names
}

// Evaluate resolves the condition against a map of signal truth values.
// It returns whether any group matched and, for the first matched group,
// the names of the terms that were true in it (the justifying signals).
// Evaluation short-circuits: a group stops at its first false term.
func (c Condition) Evaluate(values map[string]bool) (bool, []string, error) {
	if len(c) == 0 {
		return true, []string{}, nil
	}

	for _, group := range c {
		active := []string{}
		satisfied := true
		for _, term := range group {
			value, ok := values[term.Signal]
			if !ok {
				return false, nil, fmt.Errorf("missing evaluation result for signal %q", term.Signal)
			}
			if term.Negated {
				value = !value
			}
			if !value {
				satisfied = false
				break
			}
			active = append(active, term.Signal)
		}
		if satisfied {
			return true, active, nil
		}
	}

	return false, nil, nil
}
