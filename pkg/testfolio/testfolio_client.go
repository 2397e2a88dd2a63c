package testfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseUrl = "https://testfol.io"

// Client fetches shared strategy documents from the testfol.io link API.
type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient() Client {
	return Client{
		HttpClient: http.DefaultClient,
		BaseUrl:    defaultBaseUrl,
	}
}

type Indicator struct {
	Type     string   `json:"type"`
	Ticker   string   `json:"ticker"`
	Value    *float64 `json:"value"`
	Lookback *int     `json:"lookback"`
	Delay    *int     `json:"delay"`
}

type Signal struct {
	Name       string    `json:"name"`
	Indicator1 Indicator `json:"indicator_1"`
	Comparison string    `json:"comparison"`
	Indicator2 Indicator `json:"indicator_2"`
	Tolerance  *float64  `json:"tolerance"`
}

type Ticker struct {
	Ticker  string  `json:"ticker"`
	Percent float64 `json:"percent"`
}

type Allocation struct {
	Name    string   `json:"name"`
	Signals []string `json:"signals"`
	Ops     []string `json:"ops"`
	Nots    []bool   `json:"nots"`
	Tickers []Ticker `json:"tickers"`
	Drag    float64  `json:"drag"`
}

// Strategy is the raw shared backtest document. Only the declarative
// signal/allocation portion matters for evaluation; the backtest window
// and cost fields are carried for completeness.
type Strategy struct {
	Name          string       `json:"name"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	StartVal      float64      `json:"start_val"`
	RollingWindow int          `json:"rolling_window"`
	TradingCost   float64      `json:"trading_cost"`
	Signals       []Signal     `json:"signals"`
	Allocations   []Allocation `json:"allocations"`
	TradingFreq   string       `json:"trading_freq"`
	TradingOffset int          `json:"trading_offset"`
}

// GetStrategy resolves a share id (the trailing component of a
// testfol.io share link) to its strategy document.
func (c Client) GetStrategy(ctx context.Context, shareID string) (*Strategy, error) {
	url := fmt.Sprintf("%s/api/link/%s", c.BaseUrl, shareID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed to fetch strategy %s: status code %d: %s", shareID, response.StatusCode, string(responseBytes))
	}

	var strategy Strategy
	err = json.Unmarshal(responseBytes, &strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse strategy %s: %w", shareID, err)
	}

	return &strategy, nil
}
