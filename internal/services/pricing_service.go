package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/marketwatch/internal/cache"
	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/repository"
	"github.com/epeers/marketwatch/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultFetchConcurrency = 4

// Fetcher retrieves raw daily price series from a market data provider.
// Implementations may return partial or empty series.
type Fetcher interface {
	FetchDailySeries(ctx context.Context, symbol string, start, end time.Time) (models.AssetSeries, error)
	Name() string
}

// PriceStore is the persistent L2 price cache
type PriceStore interface {
	GetDailySeries(ctx context.Context, symbol string, startDate, endDate time.Time) (models.AssetSeries, error)
	StoreDailySeries(ctx context.Context, series models.AssetSeries) error
	GetPriceRange(ctx context.Context, symbol string) (*repository.PriceRange, error)
	UpsertPriceRange(ctx context.Context, symbol string, startDate, endDate, nextUpdate time.Time) error
}

// Recorder receives operational measurements
type Recorder interface {
	RecordFetch(source, status string)
	RecordRefresh(elapsed time.Duration, warnings map[models.WarningCode]int)
}

type noopRecorder struct{}

func (noopRecorder) RecordFetch(string, string)                                {}
func (noopRecorder) RecordRefresh(time.Duration, map[models.WarningCode]int) {}

// FetchResult is the outcome of fetching one symbol. Err is set when the
// provider failed; Series is then empty.
type FetchResult struct {
	Symbol string
	Series models.AssetSeries
	Source string
	Err    error
}

// PricingOptions tunes a PricingService
type PricingOptions struct {
	Concurrency int
	Recorder    Recorder
}

// PricingService fetches price series through the memory cache, the optional
// Postgres store and finally the data source
type PricingService struct {
	cache       *cache.MemoryCache
	store       PriceStore
	fetcher     Fetcher
	concurrency int
	recorder    Recorder
	now         func() time.Time
}

// NewPricingService creates a new PricingService. store may be nil.
func NewPricingService(memCache *cache.MemoryCache, store PriceStore, fetcher Fetcher, opts PricingOptions) *PricingService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultFetchConcurrency
	}
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}
	return &PricingService{
		cache:       memCache,
		store:       store,
		fetcher:     fetcher,
		concurrency: opts.Concurrency,
		recorder:    opts.Recorder,
		now:         time.Now,
	}
}

// GetSeries returns the daily series of symbol between startDate and endDate.
// The range is widened to whole calendar days.
func (s *PricingService) GetSeries(ctx context.Context, symbol string, startDate, endDate time.Time) (models.AssetSeries, string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	start := util.StartOfDay(startDate)
	end := util.StartOfDay(endDate)

	if series, ok := s.cache.GetSeries(symbol, start, end); ok {
		s.recorder.RecordFetch("cache", "hit")
		return series, "cache", nil
	}

	var stored *repository.PriceRange
	if s.store != nil {
		var err error
		stored, err = s.store.GetPriceRange(ctx, symbol)
		if err != nil {
			log.Errorf("failed to read price range for %s: %v", symbol, err)
		} else if !DetermineFetch(stored, s.now(), start, end) {
			series, err := s.store.GetDailySeries(ctx, symbol, start, end)
			if err == nil {
				s.recorder.RecordFetch("store", "hit")
				s.cache.SetSeries(symbol, start, end, series)
				return series, "store", nil
			}
			log.Errorf("failed to read stored prices for %s: %v", symbol, err)
		}
	}

	source := s.fetcher.Name()
	series, err := s.fetcher.FetchDailySeries(ctx, symbol, start, end.Add(24*time.Hour-time.Second))
	if err != nil {
		s.recorder.RecordFetch(source, "error")
		if stored != nil {
			// Stale data beats none
			if fallback, serr := s.store.GetDailySeries(ctx, symbol, start, end); serr == nil && len(fallback.Points) > 0 {
				log.Warnf("using stored prices for %s after fetch failure: %v", symbol, err)
				return fallback, "store", nil
			}
		}
		return models.AssetSeries{Symbol: symbol}, source, fmt.Errorf("failed to fetch %s from %s: %w", symbol, source, err)
	}
	series.Symbol = symbol
	s.recorder.RecordFetch(source, "ok")

	if s.store != nil && len(series.Points) > 0 {
		s.persist(ctx, series)
	}
	s.cache.SetSeries(symbol, start, end, series)
	return series, source, nil
}

func (s *PricingService) persist(ctx context.Context, series models.AssetSeries) {
	if err := s.store.StoreDailySeries(ctx, series); err != nil {
		log.Errorf("warning: failed to store prices for %s: %v", series.Symbol, err)
		return
	}
	minDate := series.Points[0].Date
	maxDate := series.Points[len(series.Points)-1].Date
	if err := s.store.UpsertPriceRange(ctx, series.Symbol, minDate, maxDate, util.NextUpdate(series.Symbol, s.now())); err != nil {
		log.Errorf("warning: failed to update price range for %s: %v", series.Symbol, err)
	}
}

// GetSeriesBatch fetches all symbols concurrently. A failing symbol is reported
// in its FetchResult and never aborts the others. Results keep the input order.
func (s *PricingService) GetSeriesBatch(ctx context.Context, symbols []string, startDate, endDate time.Time) []FetchResult {
	defer TrackTime("GetSeriesBatch", time.Now())

	results := make([]FetchResult, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			series, source, err := s.GetSeries(gctx, sym, startDate, endDate)
			results[i] = FetchResult{Symbol: series.Symbol, Series: series, Source: source, Err: err}
			if err != nil {
				log.WithField("symbol", sym).Warnf("fetch failed: %v", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ClearCache drops every cached series, forcing the next refresh to refetch
func (s *PricingService) ClearCache() {
	s.cache.Clear()
	log.Info("series cache cleared")
}

// DetermineFetch reports whether the data source must be queried for a range,
// given what the store already holds.
func DetermineFetch(priceRange *repository.PriceRange, currentDT time.Time, effectiveStart time.Time, endDate time.Time) bool {
	if priceRange == nil {
		// No stored data at all
		return true
	}

	if effectiveStart.Before(priceRange.StartDate) {
		// Historical data we've never fetched, must fetch regardless of NextUpdate
		return true
	}

	// Start is covered. Use NextUpdate for refresh timing.
	// Handles both "fully covered" and "end gap" (data not yet available) correctly.
	return !priceRange.NextUpdate.After(currentDT)
}
