package yahoo

import (
	"context"
	"encoding/json"
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

// Yahoo Finance chart API, the same public endpoint the yfinance library uses.
// No credentials are needed but requests are rate limited.
const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client is an HTTP client for the Yahoo Finance chart API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Yahoo client, optionally routed through proxyURL
func NewClient(proxyURL string) *Client {
	return NewClientWithBaseURL(defaultBaseURL, proxyURL)
}

// NewClientWithBaseURL creates a new Yahoo client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *Client) Name() string { return "yahoo" }

// chartResponse is the response structure of the chart endpoint.
// Closes are pointers because Yahoo reports null for sessions without a close.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GmtOffset            int64  `json:"gmtoffset"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailySeries fetches daily closes for symbol between start and end.
// Adjusted closes are preferred when present. Null closes become Missing points.
func (c *Client) FetchDailySeries(ctx context.Context, symbol string, start, end time.Time) (models.AssetSeries, error) {
	series := models.AssetSeries{Symbol: symbol}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	params.Set("events", "div,split")
	reqURL := c.baseURL + "/" + url.PathEscape(symbol) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return series, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return series, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return series, fmt.Errorf("yahoo returned status %d for %s", resp.StatusCode, symbol)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return series, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chart.Chart.Error != nil {
		return series, fmt.Errorf("yahoo api error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return series, nil
	}

	result := chart.Chart.Result[0]
	var closes []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) == len(result.Timestamp) {
		closes = result.Indicators.AdjClose[0].AdjClose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	series.Points = make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		p := models.PricePoint{Date: sessionDate(ts, result.Meta.GmtOffset)}
		if i >= len(closes) || closes[i] == nil || math.IsNaN(*closes[i]) {
			p.Missing = true
		} else {
			p.Close = *closes[i]
		}
		series.Points = append(series.Points, p)
	}

	sort.SliceStable(series.Points, func(i, j int) bool {
		return series.Points[i].Date.Before(series.Points[j].Date)
	})
	return series, nil
}

// sessionDate maps a session timestamp to its calendar date in the exchange's
// time zone, so that markets in different time zones share one daily axis.
// FX bars are stamped at midnight London time, 23:00 UTC the day before in summer.
func sessionDate(ts, gmtOffset int64) time.Time {
	y, m, d := time.Unix(ts+gmtOffset, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
