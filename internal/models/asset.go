package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PricePoint is a single closing price observation for a symbol.
// Missing marks a gap reported explicitly by the provider (e.g. a null close).
type PricePoint struct {
	Date    time.Time `json:"date"`
	Close   float64   `json:"close"`
	Missing bool      `json:"missing,omitempty"`
}

// AssetSeries is the raw price history returned by a data source for one symbol.
// Points are ordered by Date, strictly increasing.
type AssetSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// AlignedPoint is a rebased value on the canonical timestamp axis.
// Present is false before the asset's first usable price.
type AlignedPoint struct {
	Date    time.Time
	Value   float64
	Present bool
}

// AlignedSeries is an AssetSeries aligned onto the shared axis of a computation
// pass and rebased so that its first available value equals the base value.
type AlignedSeries struct {
	Symbol         string         `json:"symbol"`
	Points         []AlignedPoint `json:"points"`
	FirstAvailable *time.Time     `json:"first_available,omitempty"`
	InvalidPoints  int            `json:"invalid_points"` // points dropped for a non-positive or non-numeric price
}

// HasData reports whether the series has at least one present value.
func (a AlignedSeries) HasData() bool {
	return a.FirstAvailable != nil
}

// Last returns the last present value of the series.
func (a AlignedSeries) Last() (float64, bool) {
	for i := len(a.Points) - 1; i >= 0; i-- {
		if a.Points[i].Present {
			return a.Points[i].Value, true
		}
	}
	return 0, false
}

func (p AlignedPoint) MarshalJSON() ([]byte, error) {
	type plain struct {
		Date  string          `json:"date"`
		Value json.RawMessage `json:"value"`
	}
	value := json.RawMessage("null")
	if p.Present {
		value = json.RawMessage(fmt.Sprintf("%.6f", p.Value))
	}
	return json.Marshal(plain{
		Date:  p.Date.Format("2006-01-02"),
		Value: value,
	})
}

// AssetMetric is the headline figure displayed next to each asset chart.
type AssetMetric struct {
	Symbol       string  `json:"symbol"`
	Label        string  `json:"label,omitempty"`
	Price        float64 `json:"price"`
	Delta        float64 `json:"delta"`
	DeltaPercent float64 `json:"delta_percent"`
	Positive     bool    `json:"positive"`
}
