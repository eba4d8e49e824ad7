package renderer_test

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/renderer"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestLineChart(t *testing.T) {
	img, err := renderer.LineChart("Test", "subtitle", []string{"a", "b", "c"}, []renderer.NamedSeries{
		{Name: "one", Values: []float64{1, 2, 3}},
		{Name: "two", Values: []float64{math.NaN(), 2.5, 2}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic), "output is a PNG")
}

func TestLineChart_NotEnoughPoints(t *testing.T) {
	_, err := renderer.LineChart("x", "", []string{"a"}, []renderer.NamedSeries{{Name: "one", Values: []float64{1}}})
	assert.True(t, errors.Is(err, renderer.ErrNotEnoughPoints))

	_, err = renderer.LineChart("x", "", []string{"a", "b"}, []renderer.NamedSeries{{Name: "gaps", Values: []float64{math.NaN(), math.NaN()}}})
	assert.True(t, errors.Is(err, renderer.ErrNotEnoughPoints))

	_, err = renderer.LineChart("x", "", []string{"a", "b"}, nil)
	assert.True(t, errors.Is(err, renderer.ErrNotEnoughPoints))
}

func TestPriceChart(t *testing.T) {
	series := models.AssetSeries{Symbol: "GC=F", Points: []models.PricePoint{
		{Date: day(1), Close: 2000},
		{Date: day(2), Missing: true},
		{Date: day(3), Close: 2010},
		{Date: day(4), Close: 1995},
	}}
	img, err := renderer.PriceChart(series, services.ComputeAssetMetric(series), "Gold")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestComparisonChart(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		{Symbol: "A", Points: []models.PricePoint{{Date: day(1), Close: 100}, {Date: day(2), Close: 110}, {Date: day(3), Close: 121}}},
		{Symbol: "B", Points: []models.PricePoint{{Date: day(3), Close: 50}}},
		{Symbol: "EMPTY"},
	}, 100)
	require.NoError(t, err)
	portfolio, stats := services.Simulate(aligned)

	img, err := renderer.ComparisonChart(aligned, portfolio, stats)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = renderer.ComparisonChart(nil, models.PortfolioReturnSeries{}, models.SummaryStats{NoData: true})
	assert.True(t, errors.Is(err, renderer.ErrNotEnoughPoints))
}
