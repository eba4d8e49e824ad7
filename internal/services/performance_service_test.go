package services_test

import (
	"math"
	"testing"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/stretchr/testify/assert"
)

func portfolioOf(vals ...float64) models.PortfolioReturnSeries {
	s := models.PortfolioReturnSeries{}
	for i, v := range vals {
		s.Points = append(s.Points, models.PortfolioPoint{Date: day(i + 1), Value: v})
	}
	return s
}

func TestComputeRiskStats(t *testing.T) {
	stats := services.ComputeRiskStats(portfolioOf(100, 110, 99, 108.9), 0)

	// returns: +10%, -10%, +10%
	assert.Equal(t, 3, stats.Observations)
	mean := 0.1 / 3
	variance := (2*math.Pow(0.1-mean, 2) + math.Pow(-0.1-mean, 2)) / 2
	std := math.Sqrt(variance)
	assert.InDelta(t, std*math.Sqrt(252), stats.Volatility, 1e-9)
	assert.InDelta(t, mean/std*math.Sqrt(252), stats.SharpeRatio, 1e-9)
	assert.InDelta(t, 0.1, stats.MaxDrawdown, 1e-9)
}

func TestComputeRiskStats_DailyRiskFreeRate(t *testing.T) {
	stats := services.ComputeRiskStats(portfolioOf(100, 110, 99, 108.9), 4.2)

	mean := 0.1 / 3
	std := math.Sqrt((2*math.Pow(0.1-mean, 2) + math.Pow(-0.1-mean, 2)) / 2)
	dailyRf := 0.042 / 252
	assert.InDelta(t, (mean-dailyRf)/std*math.Sqrt(252), stats.SharpeRatio, 1e-9)
}

func TestComputeRiskStats_RiskFreeRateLowersSharpe(t *testing.T) {
	s := portfolioOf(100, 101, 100.5, 102, 103)
	withoutRf := services.ComputeRiskStats(s, 0)
	withRf := services.ComputeRiskStats(s, 5)
	assert.Less(t, withRf.SharpeRatio, withoutRf.SharpeRatio)
	assert.Equal(t, withoutRf.Volatility, withRf.Volatility)
}

func TestComputeRiskStats_TooFewPoints(t *testing.T) {
	assert.Equal(t, models.RiskStats{}, services.ComputeRiskStats(models.PortfolioReturnSeries{}, 0))
	assert.Equal(t, models.RiskStats{}, services.ComputeRiskStats(portfolioOf(100), 0))

	two := services.ComputeRiskStats(portfolioOf(100, 90), 0)
	assert.Equal(t, 1, two.Observations)
	assert.Equal(t, 0.0, two.Volatility)
	assert.InDelta(t, 0.1, two.MaxDrawdown, 1e-9)
}

func TestComputeRiskStats_ConstantSeries(t *testing.T) {
	stats := services.ComputeRiskStats(portfolioOf(100, 100, 100), 0)
	assert.Equal(t, 0.0, stats.Volatility)
	assert.Equal(t, 0.0, stats.SharpeRatio, "zero volatility must not divide by zero")
	assert.Equal(t, 0.0, stats.MaxDrawdown)
}

func TestComputeMaxDrawdown(t *testing.T) {
	assert.InDelta(t, 0.5, services.ComputeMaxDrawdown([]float64{100, 120, 60, 110, 130}), 1e-9)
	assert.Equal(t, 0.0, services.ComputeMaxDrawdown([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, services.ComputeMaxDrawdown(nil))
}

func TestComputeAssetMetric(t *testing.T) {
	m := services.ComputeAssetMetric(series("^GSPC",
		pt(1, 4000),
		pt(2, 4100),
		models.PricePoint{Date: day(3), Missing: true},
		pt(4, 0),
		pt(5, 4059),
	))

	assert.Equal(t, "^GSPC", m.Symbol)
	assert.Equal(t, 4059.0, m.Price)
	assert.InDelta(t, -41.0, m.Delta, 1e-9)
	assert.InDelta(t, -1.0, m.DeltaPercent, 1e-9)
	assert.False(t, m.Positive)
}

func TestComputeAssetMetric_NotEnoughData(t *testing.T) {
	m := services.ComputeAssetMetric(series("GC=F", pt(1, 2000)))
	assert.Equal(t, 0.0, m.Price)
	assert.Equal(t, 0.0, m.Delta)
	assert.True(t, m.Positive)

	flat := services.ComputeAssetMetric(series("GC=F", pt(1, 2000), pt(2, 2000)))
	assert.True(t, flat.Positive, "a zero delta is not a loss")
}
