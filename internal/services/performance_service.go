package services

import (
	"math"

	"github.com/epeers/marketwatch/internal/models"
)

const tradingDaysPerYear = 252

// ComputeRiskStats calculates volatility, Sharpe ratio and max drawdown of the
// aggregate series. riskFreeRate is an annual rate in percent (4.2 = 4.2%).
// Daily risk-free rate: (1+i/n)^1 - 1, n=252
func ComputeRiskStats(series models.PortfolioReturnSeries, riskFreeRate float64) models.RiskStats {
	values := make([]float64, 0, len(series.Points))
	for _, p := range series.Points {
		values = append(values, p.Value)
	}

	stats := models.RiskStats{
		MaxDrawdown: ComputeMaxDrawdown(values),
	}
	if len(values) < 2 {
		return stats
	}

	dailyRiskFreeRate := riskFreeRate / 100 / tradingDaysPerYear

	var returns []float64
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	stats.Observations = len(returns)
	if len(returns) < 2 {
		return stats
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	// Sample standard deviation (N-1)
	var sumSquaredDiff float64
	for _, r := range returns {
		diff := r - mean
		sumSquaredDiff += diff * diff
	}
	stdDev := math.Sqrt(sumSquaredDiff / float64(len(returns)-1))

	stats.Volatility = stdDev * math.Sqrt(tradingDaysPerYear)
	if stdDev > 0 {
		stats.SharpeRatio = (mean - dailyRiskFreeRate) / stdDev * math.Sqrt(tradingDaysPerYear)
	}
	return stats
}

// ComputeMaxDrawdown returns the largest peak-to-trough decline as a decimal
func ComputeMaxDrawdown(values []float64) float64 {
	var peak, maxDrawdown float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 && v >= 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	return maxDrawdown
}

// ComputeAssetMetric returns the latest close and its change against the
// previous usable close. Fewer than two usable closes yield a zero metric,
// which counts as positive (a zero delta is not a loss).
func ComputeAssetMetric(series models.AssetSeries) models.AssetMetric {
	metric := models.AssetMetric{Symbol: series.Symbol, Positive: true}

	var closes []float64
	for _, p := range series.Points {
		if p.Missing || !validPrice(p.Close) {
			continue
		}
		closes = append(closes, p.Close)
	}
	if len(closes) < 2 {
		return metric
	}

	latest := closes[len(closes)-1]
	prev := closes[len(closes)-2]
	metric.Price = latest
	metric.Delta = latest - prev
	metric.DeltaPercent = metric.Delta / prev * 100
	metric.Positive = metric.Delta >= 0
	return metric
}
