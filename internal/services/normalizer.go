package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/epeers/marketwatch/internal/models"
)

// DefaultBaseValue is the value every asset starts at after rebasing
const DefaultBaseValue = 100.0

var ErrInvalidBaseValue = errors.New("base value must be a positive finite number")

// Normalize aligns raw series onto one canonical timestamp axis and rebases each
// of them so that it starts at baseValue on its own first available timestamp.
//
// The axis is the union of all timestamps across the inputs. Before an asset's
// first usable price its points are absent; afterwards gaps carry the last
// known price forward. Points with a non-positive or non-numeric close are
// dropped and counted in InvalidPoints. A series without a usable point is
// still returned, with every point absent, in its input position.
func Normalize(series []models.AssetSeries, baseValue float64) ([]models.AlignedSeries, error) {
	if !(baseValue > 0) || math.IsInf(baseValue, 0) {
		return nil, ErrInvalidBaseValue
	}

	cleaned := make([]cleanSeries, len(series))
	for i, s := range series {
		cleaned[i] = cleanPoints(s)
	}

	axis := canonicalAxis(cleaned)

	aligned := make([]models.AlignedSeries, len(cleaned))
	for i, cs := range cleaned {
		aligned[i] = rebase(cs, axis, baseValue)
	}
	return aligned, nil
}

// cleanSeries is an AssetSeries with invalid points removed, sorted by date
type cleanSeries struct {
	symbol  string
	points  []models.PricePoint
	invalid int
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// cleanPoints copies the points of s, dropping invalid prices. Missing points are
// kept so their timestamp still reaches the canonical axis.
func cleanPoints(s models.AssetSeries) cleanSeries {
	cs := cleanSeries{symbol: s.Symbol}
	cs.points = make([]models.PricePoint, 0, len(s.Points))
	for _, p := range s.Points {
		if !p.Missing && !validPrice(p.Close) {
			cs.invalid++
			continue
		}
		cs.points = append(cs.points, p)
	}
	sort.SliceStable(cs.points, func(i, j int) bool {
		return cs.points[i].Date.Before(cs.points[j].Date)
	})
	return cs
}

// canonicalAxis returns the sorted union of all timestamps, one entry per instant.
func canonicalAxis(series []cleanSeries) []time.Time {
	seen := make(map[int64]struct{})
	var axis []time.Time
	for _, s := range series {
		for _, p := range s.points {
			key := p.Date.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			axis = append(axis, p.Date)
		}
	}
	sort.Slice(axis, func(i, j int) bool {
		return axis[i].Before(axis[j])
	})
	return axis
}

// rebase walks the axis once, carrying the last observed price forward.
func rebase(cs cleanSeries, axis []time.Time, baseValue float64) models.AlignedSeries {
	// A later observation at the same instant wins.
	prices := make(map[int64]float64, len(cs.points))
	for _, p := range cs.points {
		if p.Missing {
			continue
		}
		prices[p.Date.UnixNano()] = p.Close
	}

	out := models.AlignedSeries{
		Symbol:        cs.symbol,
		Points:        make([]models.AlignedPoint, len(axis)),
		InvalidPoints: cs.invalid,
	}

	var first, last float64
	started := false
	for i, t := range axis {
		out.Points[i].Date = t
		if price, ok := prices[t.UnixNano()]; ok {
			if !started {
				started = true
				first = price
				firstAt := t
				out.FirstAvailable = &firstAt
			}
			last = price
		}
		if !started {
			continue
		}
		out.Points[i].Present = true
		out.Points[i].Value = baseValue * (last / first)
	}
	return out
}
