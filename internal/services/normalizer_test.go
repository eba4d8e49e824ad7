package services_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func series(symbol string, points ...models.PricePoint) models.AssetSeries {
	return models.AssetSeries{Symbol: symbol, Points: points}
}

func pt(d int, close float64) models.PricePoint {
	return models.PricePoint{Date: day(d), Close: close}
}

func values(a models.AlignedSeries) []float64 {
	out := make([]float64, len(a.Points))
	for i, p := range a.Points {
		out[i] = math.NaN()
		if p.Present {
			out[i] = p.Value
		}
	}
	return out
}

func TestNormalize_FirstValueIsBase(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", pt(1, 37.5), pt(2, 40), pt(3, 30)),
	}, 100)
	require.NoError(t, err)
	require.Len(t, aligned, 1)

	a := aligned[0]
	require.Len(t, a.Points, 3)
	assert.True(t, a.Points[0].Present)
	assert.Equal(t, 100.0, a.Points[0].Value, "first available value must equal the base exactly")
	assert.InDelta(t, 106.6666667, a.Points[1].Value, 1e-6)
	assert.InDelta(t, 80.0, a.Points[2].Value, 1e-9)
	require.NotNil(t, a.FirstAvailable)
	assert.Equal(t, day(1), *a.FirstAvailable)
}

func TestNormalize_LateListingAndForwardFill(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", pt(1, 100), pt(2, 110), pt(3, 121), pt(4, 125)),
		series("B", pt(2, 50), pt(4, 60)),
	}, 100)
	require.NoError(t, err)

	b := aligned[1]
	require.Len(t, b.Points, 4)
	assert.False(t, b.Points[0].Present, "absent before the first observation")
	assert.Equal(t, 100.0, b.Points[1].Value)
	assert.True(t, b.Points[2].Present)
	assert.Equal(t, 100.0, b.Points[2].Value, "gap carries the last value forward")
	assert.InDelta(t, 120.0, b.Points[3].Value, 1e-9)
	assert.Equal(t, day(2), *b.FirstAvailable)
}

func TestNormalize_CanonicalAxisIsSortedUnion(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", pt(5, 10), pt(1, 10)),
		series("B", pt(3, 20), pt(1, 20)),
	}, 100)
	require.NoError(t, err)

	for _, a := range aligned {
		require.Len(t, a.Points, 3)
		assert.Equal(t, day(1), a.Points[0].Date)
		assert.Equal(t, day(3), a.Points[1].Date)
		assert.Equal(t, day(5), a.Points[2].Date)
	}
}

func TestNormalize_SameInstantDifferentZones(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", models.PricePoint{Date: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Close: 1}),
		series("B", models.PricePoint{Date: time.Date(2024, 1, 1, 7, 0, 0, 0, ny), Close: 2}),
	}, 100)
	require.NoError(t, err)
	assert.Len(t, aligned[0].Points, 1, "one axis entry per instant")
}

func TestNormalize_InvalidPricesDropped(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", pt(1, 0), pt(2, 50), pt(3, -1), pt(4, math.NaN()), pt(5, math.Inf(1)), pt(6, 75)),
	}, 100)
	require.NoError(t, err)

	a := aligned[0]
	assert.Equal(t, 4, a.InvalidPoints)
	require.Len(t, a.Points, 2, "dropped points do not contribute timestamps")
	assert.Equal(t, day(2), a.Points[0].Date)
	assert.Equal(t, 100.0, a.Points[0].Value, "a zero price is never used as the divisor")
	assert.InDelta(t, 150.0, a.Points[1].Value, 1e-9)
	for _, v := range values(a) {
		assert.False(t, math.IsInf(v, 0))
		assert.False(t, math.IsNaN(v))
	}
}

func TestNormalize_MissingPointsKeepTimestamp(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("A", pt(1, 10), models.PricePoint{Date: day(2), Missing: true}, pt(3, 20)),
	}, 100)
	require.NoError(t, err)

	a := aligned[0]
	require.Len(t, a.Points, 3)
	assert.Equal(t, 0, a.InvalidPoints)
	assert.Equal(t, 100.0, a.Points[1].Value, "missing close is forward filled")
	assert.Equal(t, 200.0, a.Points[2].Value)
}

func TestNormalize_EmptySeriesKept(t *testing.T) {
	aligned, err := services.Normalize([]models.AssetSeries{
		series("EMPTY"),
		series("A", pt(1, 10), pt(2, 11)),
		series("ZERO", pt(1, 0)),
	}, 100)
	require.NoError(t, err)
	require.Len(t, aligned, 3)

	assert.Equal(t, "EMPTY", aligned[0].Symbol)
	assert.Equal(t, "ZERO", aligned[2].Symbol)
	for _, idx := range []int{0, 2} {
		a := aligned[idx]
		assert.False(t, a.HasData())
		assert.Nil(t, a.FirstAvailable)
		require.Len(t, a.Points, 2, "absent series spans the full axis")
		for _, p := range a.Points {
			assert.False(t, p.Present)
		}
	}
}

func TestNormalize_NoInput(t *testing.T) {
	aligned, err := services.Normalize(nil, 100)
	require.NoError(t, err)
	assert.Empty(t, aligned)
}

func TestNormalize_InvalidBaseValue(t *testing.T) {
	for _, base := range []float64{0, -100, math.NaN(), math.Inf(1)} {
		_, err := services.Normalize([]models.AssetSeries{series("A", pt(1, 10))}, base)
		assert.True(t, errors.Is(err, services.ErrInvalidBaseValue), "base %v", base)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []models.AssetSeries{series("A", pt(3, 30), pt(1, 0), pt(2, 20))}
	_, err := services.Normalize(in, 100)
	require.NoError(t, err)

	assert.Equal(t, []models.PricePoint{pt(3, 30), pt(1, 0), pt(2, 20)}, in[0].Points)
}

func TestNormalize_RoundTrip(t *testing.T) {
	raw := []float64{37.2, 41.9, 12.345, 98.7, 37.2}
	points := make([]models.PricePoint, len(raw))
	for i, p := range raw {
		points[i] = pt(i+1, p)
	}

	const base = 1000.0
	aligned, err := services.Normalize([]models.AssetSeries{series("A", points...)}, base)
	require.NoError(t, err)

	for i, p := range aligned[0].Points {
		// value / base * first == raw price
		assert.InDelta(t, raw[i], p.Value/base*raw[0], 1e-9)
	}
	assert.InDelta(t, base, aligned[0].Points[4].Value, 1e-9)
}
