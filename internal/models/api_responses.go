package models

// DashboardRequest represents the request body for a dashboard refresh.
// Either Period or StartDate must be usable; EndDate defaults to now.
type DashboardRequest struct {
	Symbols   []string     `json:"symbols"`
	Period    string       `json:"period"`
	StartDate FlexibleDate `json:"start_date"`
	EndDate   FlexibleDate `json:"end_date"`
	BaseValue float64      `json:"base_value"`
}

// DashboardResponse is everything the rendering layer needs for one refresh
type DashboardResponse struct {
	Symbols   []string              `json:"symbols"`
	Period    string                `json:"period,omitempty"`
	StartDate FlexibleDate          `json:"start_date"`
	EndDate   FlexibleDate          `json:"end_date"`
	BaseValue float64               `json:"base_value"`
	Aligned   []AlignedSeries       `json:"aligned"`
	Portfolio PortfolioReturnSeries `json:"portfolio"`
	Summary   SummaryStats          `json:"summary"`
	Risk      RiskStats             `json:"risk"`
	Metrics   []AssetMetric         `json:"metrics"`
	Warnings  []Warning             `json:"warnings"`
}

// CacheClearResponse is returned after the series cache was dropped
type CacheClearResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GetDailyPricesRequest represents the query parameters for GET /admin/get_daily_prices
type GetDailyPricesRequest struct {
	Ticker    string `form:"ticker" binding:"required"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// GetDailyPricesResponse is the unaligned price history of one symbol
type GetDailyPricesResponse struct {
	Symbol    string       `json:"symbol"`
	Source    string       `json:"source"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Count     int          `json:"count"`
	Points    []PricePoint `json:"points"`
}
