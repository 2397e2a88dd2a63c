package l1_service

import (
	"testing"

	"tactical/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_ApplyLeverage(t *testing.T) {
	series := domain.Series{
		{Date: "2024-01-02", Value: 100},
		{Date: "2024-01-03", Value: 110},
		{Date: "2024-01-04", Value: 121},
	}

	t.Run("1x is the identity", func(t *testing.T) {
		out, err := ApplyLeverage(series, 1)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(series, out))
	})

	t.Run("2x compounds doubled daily returns", func(t *testing.T) {
		out, err := ApplyLeverage(series, 2)
		require.NoError(t, err)

		expected := domain.Series{
			{Date: "2024-01-02", Value: 100},
			{Date: "2024-01-03", Value: 120},
			{Date: "2024-01-04", Value: 144},
		}
		require.Empty(t, cmp.Diff(expected, out))
	})

	t.Run("negative leverage inverts the move", func(t *testing.T) {
		out, err := ApplyLeverage(domain.Series{
			{Date: "2024-01-02", Value: 100},
			{Date: "2024-01-03", Value: 110},
		}, -1)
		require.NoError(t, err)
		require.InDelta(t, 90.0, out[1].Value, 1e-9)
	})

	t.Run("empty series passes through", func(t *testing.T) {
		out, err := ApplyLeverage(domain.Series{}, 3)
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("zero prior close is an error", func(t *testing.T) {
		_, err := ApplyLeverage(domain.Series{
			{Date: "2024-01-02", Value: 0},
			{Date: "2024-01-03", Value: 10},
		}, 2)
		require.ErrorContains(t, err, "prior close is zero")
	})
}
