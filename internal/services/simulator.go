package services

import (
	"github.com/epeers/marketwatch/internal/models"
)

// EqualWeights assigns 1/N to every asset with at least one present value.
// Fully absent assets get no weight and do not count towards N. Assets are
// identified by symbol; a repeated symbol counts once.
func EqualWeights(aligned []models.AlignedSeries) map[string]float64 {
	weights := make(map[string]float64)
	var included []string
	for _, a := range uniqueBySymbol(aligned) {
		if a.HasData() {
			included = append(included, a.Symbol)
		}
	}
	if len(included) == 0 {
		return weights
	}
	w := 1.0 / float64(len(included))
	for _, sym := range included {
		weights[sym] = w
	}
	return weights
}

// BuildPortfolio wraps aligned series with their equal weights
func BuildPortfolio(aligned []models.AlignedSeries) models.Portfolio {
	aligned = uniqueBySymbol(aligned)
	return models.Portfolio{
		Assets:  aligned,
		Weights: EqualWeights(aligned),
	}
}

// Simulate computes the equal-weighted aggregate series of the aligned assets.
//
// At every canonical timestamp the aggregate is the sum of weight*value over the
// assets present at that timestamp. The weight of an absent asset is NOT
// redistributed to the others, so the aggregate understates performance while
// a later-listed asset has not started trading yet. Callers that need true
// rebalancing must fill gaps upstream.
//
// When no asset has a usable value the result carries SummaryStats.NoData.
// Series sharing a symbol are simulated once, see uniqueBySymbol.
func Simulate(aligned []models.AlignedSeries) (models.PortfolioReturnSeries, models.SummaryStats) {
	portfolio := BuildPortfolio(aligned)
	aligned = portfolio.Assets
	if len(portfolio.Weights) == 0 {
		stats := models.SummaryStats{NoData: true}
		for _, a := range aligned {
			stats.Excluded = append(stats.Excluded, a.Symbol)
		}
		return models.PortfolioReturnSeries{}, stats
	}

	axisLen := 0
	for _, a := range aligned {
		if len(a.Points) > axisLen {
			axisLen = len(a.Points)
		}
	}

	series := models.PortfolioReturnSeries{
		Points: make([]models.PortfolioPoint, axisLen),
	}
	for i := 0; i < axisLen; i++ {
		var value float64
		for _, a := range aligned {
			w, ok := portfolio.Weights[a.Symbol]
			if !ok || i >= len(a.Points) {
				continue
			}
			p := a.Points[i]
			series.Points[i].Date = p.Date
			if p.Present {
				value += w * p.Value
			}
		}
		series.Points[i].Value = value
	}

	return series, summarize(aligned, portfolio.Weights, series)
}

// uniqueBySymbol keeps one series per symbol, in order of first appearance.
// A copy with data replaces an earlier fully absent one.
func uniqueBySymbol(aligned []models.AlignedSeries) []models.AlignedSeries {
	index := make(map[string]int, len(aligned))
	out := make([]models.AlignedSeries, 0, len(aligned))
	for _, a := range aligned {
		i, seen := index[a.Symbol]
		if !seen {
			index[a.Symbol] = len(out)
			out = append(out, a)
			continue
		}
		if !out[i].HasData() && a.HasData() {
			out[i] = a
		}
	}
	return out
}

func summarize(aligned []models.AlignedSeries, weights map[string]float64, series models.PortfolioReturnSeries) models.SummaryStats {
	stats := models.SummaryStats{}

	// Every included asset starts exactly at the base value.
	for _, a := range aligned {
		if !a.HasData() {
			continue
		}
		for _, p := range a.Points {
			if p.Present {
				stats.BaseValue = p.Value
				break
			}
		}
		break
	}

	for _, a := range aligned {
		w, ok := weights[a.Symbol]
		if !ok {
			stats.Excluded = append(stats.Excluded, a.Symbol)
			continue
		}
		stats.Included = append(stats.Included, a.Symbol)
		last, _ := a.Last()
		stats.AssetReturns = append(stats.AssetReturns, models.AssetReturn{
			Symbol:      a.Symbol,
			Weight:      w,
			TotalReturn: last/stats.BaseValue - 1,
		})
	}

	if n := len(series.Points); n > 0 {
		stats.StartValue = series.Points[0].Value
		stats.EndValue = series.Points[n-1].Value
		stats.TotalReturn = stats.EndValue/stats.BaseValue - 1
	}
	return stats
}
