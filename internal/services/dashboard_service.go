package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/util"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoSymbols        = errors.New("no symbols requested")
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidDateRange = errors.New("end_date must be after start_date")
)

// Tickers as the data sources spell them: ^GSPC, EURUSD=X, BTC-USD, BRK.B
var symbolPattern = regexp.MustCompile(`^[A-Z0-9^=.\-]{1,20}$`)

// DashboardOptions holds the defaults applied to requests that omit them
type DashboardOptions struct {
	DefaultPeriod string
	BaseValue     float64
	RiskFreeRate  float64
}

// DashboardService turns a symbol selection and a date range into everything a
// dashboard page shows: aligned series, the equal-weighted aggregate, summary
// and risk statistics, per-asset metrics and warnings
type DashboardService struct {
	pricingSvc *PricingService
	catalog    *models.Catalog
	opts       DashboardOptions
	recorder   Recorder
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(pricingSvc *PricingService, catalog *models.Catalog, opts DashboardOptions, recorder Recorder) *DashboardService {
	if opts.DefaultPeriod == "" {
		opts.DefaultPeriod = "1y"
	}
	if opts.BaseValue == 0 {
		opts.BaseValue = DefaultBaseValue
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &DashboardService{
		pricingSvc: pricingSvc,
		catalog:    catalog,
		opts:       opts,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Catalog returns the assets offered by the dashboard
func (s *DashboardService) Catalog() *models.Catalog {
	return s.catalog
}

// Refresh runs one full dashboard computation. Every call starts from scratch;
// only the price caches are shared between calls.
func (s *DashboardService) Refresh(ctx context.Context, req models.DashboardRequest) (*models.DashboardResponse, error) {
	start := time.Now()
	defer TrackTime("Refresh", start)

	symbols, err := s.resolveSymbols(req.Symbols)
	if err != nil {
		return nil, err
	}
	period, startDate, endDate, err := s.resolveRange(req.Period, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	baseValue := req.BaseValue
	if baseValue == 0 {
		baseValue = s.opts.BaseValue
	}
	if baseValue < 0 {
		return nil, ErrInvalidBaseValue
	}

	ctx, wc := NewWarningContext(ctx)

	results := s.pricingSvc.GetSeriesBatch(ctx, symbols, startDate, endDate)
	raw := make([]models.AssetSeries, len(results))
	failed := make(map[string]bool)
	for i, r := range results {
		raw[i] = r.Series
		raw[i].Symbol = symbols[i]
		if r.Err != nil {
			failed[symbols[i]] = true
			raw[i].Points = nil
			AddWarning(ctx, models.Warning{
				Code:    models.WarnFetchFailed,
				Symbol:  symbols[i],
				Message: fmt.Sprintf("Could not retrieve prices for %s; it is excluded from the portfolio.", symbols[i]),
			})
		}
	}

	aligned, err := Normalize(raw, baseValue)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize series: %w", err)
	}

	for _, a := range aligned {
		if a.InvalidPoints > 0 {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnInvalidPrice,
				Symbol:  a.Symbol,
				Message: fmt.Sprintf("%d non-positive or non-numeric prices of %s were ignored.", a.InvalidPoints, a.Symbol),
			})
		}
		if !a.HasData() && !failed[a.Symbol] {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnMissingData,
				Symbol:  a.Symbol,
				Message: fmt.Sprintf("No usable prices for %s in the selected range; it is excluded from the portfolio.", a.Symbol),
			})
		}
	}

	portfolio, summary := Simulate(aligned)
	if summary.NoData {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnEmptyPortfolio,
			Message: "None of the selected assets has data in the selected range.",
		})
	}

	metrics := make([]models.AssetMetric, len(raw))
	for i, series := range raw {
		metrics[i] = ComputeAssetMetric(series)
		metrics[i].Label = s.catalog.Label(series.Symbol)
	}

	resp := &models.DashboardResponse{
		Symbols:   symbols,
		Period:    period,
		StartDate: models.FlexibleDate{Time: startDate},
		EndDate:   models.FlexibleDate{Time: endDate},
		BaseValue: baseValue,
		Aligned:   aligned,
		Portfolio: portfolio,
		Summary:   summary,
		Risk:      ComputeRiskStats(portfolio, s.opts.RiskFreeRate),
		Metrics:   metrics,
		Warnings:  wc.GetWarnings(),
	}

	s.recorder.RecordRefresh(time.Since(start), wc.CountByCode())
	log.WithFields(log.Fields{
		"symbols":  len(symbols),
		"included": len(summary.Included),
		"warnings": len(resp.Warnings),
	}).Info("dashboard refreshed")
	return resp, nil
}

// AssetHistory returns the raw closes of one symbol over period and its latest move
func (s *DashboardService) AssetHistory(ctx context.Context, symbol, period string) (models.AssetSeries, models.AssetMetric, error) {
	symbols, err := s.resolveSymbols([]string{symbol})
	if err != nil {
		return models.AssetSeries{}, models.AssetMetric{}, err
	}
	_, startDate, endDate, err := s.resolveRange(period, models.FlexibleDate{}, models.FlexibleDate{})
	if err != nil {
		return models.AssetSeries{}, models.AssetMetric{}, err
	}

	series, _, err := s.pricingSvc.GetSeries(ctx, symbols[0], startDate, endDate)
	if err != nil {
		return models.AssetSeries{}, models.AssetMetric{}, err
	}
	metric := ComputeAssetMetric(series)
	metric.Label = s.catalog.Label(series.Symbol)
	return series, metric, nil
}

// Warm prefetches every catalog symbol over the default period into the caches
func (s *DashboardService) Warm(ctx context.Context) int {
	_, startDate, endDate, err := s.resolveRange("", models.FlexibleDate{}, models.FlexibleDate{})
	if err != nil {
		log.Errorf("failed to resolve warm range: %v", err)
		return 0
	}
	warmed := 0
	for _, r := range s.pricingSvc.GetSeriesBatch(ctx, s.catalog.Symbols(), startDate, endDate) {
		if r.Err == nil {
			warmed++
		}
	}
	return warmed
}

// resolveSymbols upper-cases and deduplicates symbols, keeping the first
// occurrence. No symbols at all selects the whole catalog.
func (s *DashboardService) resolveSymbols(requested []string) ([]string, error) {
	if len(requested) == 0 {
		requested = s.catalog.Symbols()
	}
	seen := make(map[string]struct{}, len(requested))
	var symbols []string
	for _, sym := range requested {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		if !symbolPattern.MatchString(sym) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, sym)
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	return symbols, nil
}

// resolveRange turns either an explicit start date or a named period into a
// date range. The end defaults to today.
func (s *DashboardService) resolveRange(period string, startDate, endDate models.FlexibleDate) (string, time.Time, time.Time, error) {
	end := s.now()
	if !endDate.IsZero() {
		end = endDate.Time
	}
	end = util.StartOfDay(end)

	if !startDate.IsZero() {
		start := util.StartOfDay(startDate.Time)
		if !end.After(start) {
			return "", time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		return "", start, end, nil
	}

	if period == "" {
		period = s.opts.DefaultPeriod
	}
	start, err := util.PeriodStart(period, end)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return period, start, end, nil
}
