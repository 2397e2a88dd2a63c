package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseUrl = "https://api.stlouisfed.org"

// Client fetches observation series from the FRED API
// (https://fred.stlouisfed.org). Observations are daily/monthly
// date-value pairs with no OHLC or volume data.
type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string
}

func NewClient(apiKey string) Client {
	return Client{
		HttpClient: http.DefaultClient,
		ApiKey:     apiKey,
		BaseUrl:    defaultBaseUrl,
	}
}

type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Observations []Observation `json:"observations"`
}

// GetObservations returns a series' observations between start and end,
// inclusive, in the API's native ascending date order. Values are raw
// strings; missing observations are reported as ".".
func (c Client) GetObservations(ctx context.Context, seriesID string, start, end time.Time) ([]Observation, error) {
	if c.ApiKey == "" {
		return nil, fmt.Errorf("no FRED api key provided")
	}

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.ApiKey)
	params.Set("file_type", "json")
	params.Set("observation_start", start.Format(time.DateOnly))
	params.Set("observation_end", end.Format(time.DateOnly))

	requestUrl := fmt.Sprintf("%s/fred/series/observations?%s", c.BaseUrl, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}
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
		return nil, fmt.Errorf("failed to fetch FRED series %s: status code %d: %s", seriesID, response.StatusCode, string(responseBytes))
	}

	var responseJson observationsResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FRED response for %s: %w", seriesID, err)
	}

	return responseJson.Observations, nil
}
