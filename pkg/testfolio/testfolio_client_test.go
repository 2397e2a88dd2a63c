package testfolio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetStrategy(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/link/abc123", r.URL.Path)

			w.Write([]byte(`{
				"name": "Tactical 60/40",
				"start_date": "2010-01-01",
				"signals": [
					{
						"name": "risk off",
						"indicator_1": {"type": "Price", "ticker": "SPY"},
						"comparison": "<",
						"indicator_2": {"type": "SMA", "ticker": "SPY", "lookback": 200},
						"tolerance": 1.5
					},
					{
						"name": "vix spike",
						"indicator_1": {"type": "VIX"},
						"comparison": ">",
						"indicator_2": {"type": "Threshold", "value": 30}
					}
				],
				"allocations": [
					{
						"name": "Defensive",
						"signals": ["risk off", "vix spike"],
						"ops": ["OR"],
						"nots": [false, false],
						"tickers": [{"ticker": "TLT", "percent": 100}]
					},
					{
						"name": "Growth",
						"signals": [],
						"ops": [],
						"nots": [],
						"tickers": [
							{"ticker": "SPY", "percent": 60},
							{"ticker": "TLT", "percent": 40}
						]
					}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient()
		client.BaseUrl = server.URL

		strategy, err := client.GetStrategy(context.Background(), "abc123")
		require.NoError(t, err)
		require.Equal(t, "Tactical 60/40", strategy.Name)
		require.Len(t, strategy.Signals, 2)
		require.Len(t, strategy.Allocations, 2)

		riskOff := strategy.Signals[0]
		require.Equal(t, "risk off", riskOff.Name)
		require.Equal(t, "SPY", riskOff.Indicator1.Ticker)
		require.NotNil(t, riskOff.Indicator2.Lookback)
		require.Equal(t, 200, *riskOff.Indicator2.Lookback)
		require.NotNil(t, riskOff.Tolerance)
		require.Equal(t, 1.5, *riskOff.Tolerance)

		// absent optional fields stay nil instead of defaulting
		vixSpike := strategy.Signals[1]
		require.Nil(t, vixSpike.Tolerance)
		require.Nil(t, vixSpike.Indicator1.Lookback)
		require.NotNil(t, vixSpike.Indicator2.Value)
		require.Equal(t, 30.0, *vixSpike.Indicator2.Value)

		require.Equal(t, "Defensive", strategy.Allocations[0].Name)
		require.Equal(t, []string{"OR"}, strategy.Allocations[0].Ops)
	})

	t.Run("unknown share id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not found"))
		}))
		defer server.Close()

		client := NewClient()
		client.BaseUrl = server.URL

		_, err := client.GetStrategy(context.Background(), "missing")
		require.ErrorContains(t, err, "status code 404")
	})
}
