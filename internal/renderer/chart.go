package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/vicanso/go-charts/v2"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
	maxXLabels    = 10
)

var ErrNotEnoughPoints = errors.New("not enough data points to render")

// NamedSeries is one line of a chart. Values use math.NaN() for gaps.
type NamedSeries struct {
	Name   string
	Values []float64
}

// LineChart renders the series as a PNG line chart sharing the labels axis.
// The y axis is scaled to the data with a 5% margin rather than anchored at zero.
func LineChart(title, subtitle string, labels []string, series []NamedSeries) ([]byte, error) {
	if len(labels) < 2 || len(series) == 0 {
		return nil, ErrNotEnoughPoints
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	values := make([][]float64, len(series))
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
		values[i] = make([]float64, len(labels))
		for j := range labels {
			v := math.NaN()
			if j < len(s.Values) {
				v = s.Values[j]
			}
			if math.IsNaN(v) {
				values[i][j] = charts.GetNullValue()
				continue
			}
			values[i][j] = v
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	if math.IsInf(yMin, 1) {
		return nil, ErrNotEnoughPoints
	}

	pad := (yMax - yMin) * 0.05
	if pad < math.Abs(yMax)*0.002 {
		pad = math.Abs(yMax) * 0.002
	}
	yMin -= pad
	yMax += pad

	opts := []charts.OptionFunc{
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: splitNumber(len(labels)),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(defaultWidth),
		charts.HeightOptionFunc(defaultHeight),
	}
	if len(series) > 1 {
		opts = append(opts, charts.LegendOptionFunc(charts.LegendOption{Data: names}))
	}

	painter, err := charts.LineRender(values, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return img, nil
}

// PriceChart renders the raw closes of one asset; the subtitle shows the last move
func PriceChart(series models.AssetSeries, metric models.AssetMetric, title string) ([]byte, error) {
	var labels []string
	var closes []float64
	for _, p := range series.Points {
		if p.Missing || p.Close <= 0 {
			continue
		}
		labels = append(labels, p.Date.Format("2006-01-02"))
		closes = append(closes, p.Close)
	}
	if title == "" {
		title = series.Symbol
	}
	arrow := "▼"
	if metric.Positive {
		arrow = "▲"
	}
	subtitle := fmt.Sprintf("%s %.2f  %+.2f (%+.2f%%)", arrow, metric.Price, metric.Delta, metric.DeltaPercent)
	return LineChart(title, subtitle, labels, []NamedSeries{{Name: series.Symbol, Values: closes}})
}

// ComparisonChart renders every aligned series plus the portfolio aggregate
func ComparisonChart(aligned []models.AlignedSeries, portfolio models.PortfolioReturnSeries, stats models.SummaryStats) ([]byte, error) {
	labels := make([]string, len(portfolio.Points))
	total := make([]float64, len(portfolio.Points))
	for i, p := range portfolio.Points {
		labels[i] = p.Date.Format("2006-01-02")
		total[i] = p.Value
	}

	var series []NamedSeries
	for _, a := range aligned {
		if !a.HasData() {
			continue
		}
		values := make([]float64, len(a.Points))
		for i, p := range a.Points {
			values[i] = math.NaN()
			if p.Present {
				values[i] = p.Value
			}
		}
		series = append(series, NamedSeries{Name: a.Symbol, Values: values})
	}
	series = append(series, NamedSeries{Name: "Portfolio", Values: total})

	subtitle := fmt.Sprintf("equal weight • base %.0f • total %+.2f%%", stats.BaseValue, stats.TotalReturn*100)
	return LineChart("Normalized performance", subtitle, labels, series)
}

func splitNumber(n int) int {
	if n < maxXLabels {
		return n
	}
	return maxXLabels
}
