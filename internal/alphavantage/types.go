package alphavantage

// TimeSeriesDailyResponse represents the AlphaVantage TIME_SERIES_DAILY response
type TimeSeriesDailyResponse struct {
	MetaData   map[string]string    `json:"Meta Data"`
	TimeSeries map[string]DailyOHLC `json:"Time Series (Daily)"`

	// Set instead of TimeSeries when the call was throttled or rejected
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// DailyOHLC is one day of the daily time series, values are decimal strings
type DailyOHLC struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
