package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_ParseCondition(t *testing.T) {
	t.Run("empty condition", func(t *testing.T) {
		condition, err := ParseCondition(nil, nil, nil)
		require.NoError(t, err)
		require.Empty(t, condition)
	})

	t.Run("and binds tighter than or", func(t *testing.T) {
		condition, err := ParseCondition(
			[]string{"a", "b", "c"},
			[]Operation{OperationAnd, OperationOr},
			[]bool{false, true, false},
		)
		require.NoError(t, err)

		expected := Condition{
			{{Signal: "a"}, {Signal: "b", Negated: true}},
			{{Signal: "c"}},
		}
		require.Empty(t, cmp.Diff(expected, condition))
	})

	t.Run("shape mismatches rejected", func(t *testing.T) {
		_, err := ParseCondition([]string{"a", "b"}, []Operation{}, []bool{false, false})
		require.ErrorContains(t, err, "2 signals but 0 operators")

		_, err = ParseCondition([]string{"a"}, []Operation{}, []bool{})
		require.ErrorContains(t, err, "1 signals but 0 negation flags")
	})

	t.Run("unknown operator rejected", func(t *testing.T) {
		_, err := ParseCondition([]string{"a", "b"}, []Operation{"XOR"}, []bool{false, false})
		require.ErrorContains(t, err, `unknown operator "XOR"`)
	})
}

func Test_Condition_SignalNames(t *testing.T) {
	condition, err := ParseCondition(
		[]string{"a", "b", "a", "c"},
		[]Operation{OperationAnd, OperationOr, OperationAnd},
		[]bool{false, false, true, false},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, condition.SignalNames())
}

func Test_Condition_Evaluate(t *testing.T) {
	t.Run("empty condition is unconditionally true", func(t *testing.T) {
		matched, active, err := Condition{}.Evaluate(nil)
		require.NoError(t, err)
		require.True(t, matched)
		require.Empty(t, active)
	})

	t.Run("first satisfied group wins", func(t *testing.T) {
		condition, err := ParseCondition(
			[]string{"a", "b", "c"},
			[]Operation{OperationAnd, OperationOr},
			[]bool{false, false, false},
		)
		require.NoError(t, err)

		matched, active, err := condition.Evaluate(map[string]bool{"a": false, "b": true, "c": true})
		require.NoError(t, err)
		require.True(t, matched)
		require.Equal(t, []string{"c"}, active)
	})

	t.Run("and group requires every term", func(t *testing.T) {
		condition, err := ParseCondition(
			[]string{"a", "b"},
			[]Operation{OperationAnd},
			[]bool{false, false},
		)
		require.NoError(t, err)

		matched, _, err := condition.Evaluate(map[string]bool{"a": true, "b": false})
		require.NoError(t, err)
		require.False(t, matched)

		matched, active, err := condition.Evaluate(map[string]bool{"a": true, "b": true})
		require.NoError(t, err)
		require.True(t, matched)
		require.Equal(t, []string{"a", "b"}, active)
	})

	t.Run("negation flips the term", func(t *testing.T) {
		condition, err := ParseCondition([]string{"a"}, []Operation{}, []bool{true})
		require.NoError(t, err)

		matched, active, err := condition.Evaluate(map[string]bool{"a": false})
		require.NoError(t, err)
		require.True(t, matched)
		require.Equal(t, []string{"a"}, active)

		matched, _, err = condition.Evaluate(map[string]bool{"a": true})
		require.NoError(t, err)
		require.False(t, matched)
	})

	t.Run("missing signal value is an error", func(t *testing.T) {
		condition, err := ParseCondition([]string{"a"}, []Operation{}, []bool{false})
		require.NoError(t, err)

		_, _, err = condition.Evaluate(map[string]bool{})
		require.ErrorContains(t, err, `missing evaluation result for signal "a"`)
	})
}
