package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/epeers/marketwatch/internal/models"
)

// Alphavantage is a Stock and ETF API that fetches data including pricing data
// It is a subscription service, but provides free API access
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

// compact responses hold the last 100 trading days
const compactDays = 100

var ErrRateLimited = errors.New("alphavantage rate limit reached")

// Client is an HTTP client for the AlphaVantage API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Name() string { return "alphavantage" }

// FetchDailySeries fetches daily closes for symbol between start and end, inclusive.
// Unparseable closes are reported as Missing points rather than dropped.
func (c *Client) FetchDailySeries(ctx context.Context, symbol string, start, end time.Time) (models.AssetSeries, error) {
	series := models.AssetSeries{Symbol: symbol}

	outputSize := "compact"
	if time.Since(start).Hours()/24.0 >= compactDays {
		outputSize = "full"
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputSize)
	params.Set("apikey", c.apiKey)

	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return series, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, fmt.Errorf("failed to read response: %w", err)
	}

	var tsResp TimeSeriesDailyResponse
	if err := json.Unmarshal(body, &tsResp); err != nil {
		return series, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if tsResp.ErrorMessage != "" {
		return series, fmt.Errorf("alphavantage error for %s: %s", symbol, tsResp.ErrorMessage)
	}
	if tsResp.TimeSeries == nil && (tsResp.Note != "" || tsResp.Information != "") {
		return series, fmt.Errorf("%w: %s%s", ErrRateLimited, tsResp.Note, tsResp.Information)
	}

	for dateStr, ohlc := range tsResp.TimeSeries {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		// An unparseable close stays a zero price, which the normalizer drops
		// and reports as invalid rather than bridging it as a gap.
		closePrice, err := strconv.ParseFloat(ohlc.Close, 64)
		if err != nil || math.IsNaN(closePrice) || math.IsInf(closePrice, 0) {
			closePrice = 0
		}
		series.Points = append(series.Points, models.PricePoint{Date: date, Close: closePrice})
	}

	// map iteration order is random
	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Date.Before(series.Points[j].Date)
	})
	return series, nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
