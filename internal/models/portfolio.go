package models

import (
	"time"
)

// Portfolio is a hypothetical equal-weighted portfolio over aligned series.
// Weights only hold symbols with at least one present value and sum to 1.0.
type Portfolio struct {
	Assets  []AlignedSeries
	Weights map[string]float64
}

// PortfolioPoint is the aggregate portfolio value at one canonical timestamp
type PortfolioPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PortfolioReturnSeries is the aggregate value of a Portfolio over the canonical axis
type PortfolioReturnSeries struct {
	Points []PortfolioPoint `json:"points"`
}

// AssetReturn is the total return of a single included asset over the period
type AssetReturn struct {
	Symbol      string  `json:"symbol"`
	Weight      float64 `json:"weight"`
	TotalReturn float64 `json:"total_return"`
}

// SummaryStats describes a simulated portfolio.
// NoData is set when no asset contributed a single usable value; the other
// fields are then zero and must not be read as a 0% return.
type SummaryStats struct {
	NoData       bool          `json:"no_data"`
	BaseValue    float64       `json:"base_value"`
	StartValue   float64       `json:"start_value"`
	EndValue     float64       `json:"end_value"`
	TotalReturn  float64       `json:"total_return"` // decimal, 0.105 = 10.5%
	AssetReturns []AssetReturn `json:"asset_returns"`
	Included     []string      `json:"included"`
	Excluded     []string      `json:"excluded"`
}

// RiskStats contains risk metrics computed from the aggregate series
type RiskStats struct {
	Observations int     `json:"observations"`
	Volatility   float64 `json:"volatility"`   // annualized, decimal
	SharpeRatio  float64 `json:"sharpe_ratio"` // annualized
	MaxDrawdown  float64 `json:"max_drawdown"` // decimal, 0.2 = 20% peak-to-trough
}
