package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceRepository persists fetched daily closes so that restarts and other
// instances do not hit the data source again
type PriceRepository struct {
	pool *pgxpool.Pool
}

// PriceRange represents the stored date range for a symbol's prices
type PriceRange struct {
	Symbol     string
	StartDate  time.Time
	EndDate    time.Time
	NextUpdate time.Time
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetDailySeries retrieves stored daily closes for a symbol within a date range
func (r *PriceRepository) GetDailySeries(ctx context.Context, symbol string, startDate, endDate time.Time) (models.AssetSeries, error) {
	symbol = strings.ToUpper(symbol)
	series := models.AssetSeries{Symbol: symbol}

	query := `
		SELECT date, COALESCE(close, 0), missing
		FROM fact_price
		WHERE symbol = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	rows, err := r.pool.Query(ctx, query, symbol, startDate, endDate)
	if err != nil {
		return series, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Date, &p.Close, &p.Missing); err != nil {
			return series, fmt.Errorf("failed to scan price data: %w", err)
		}
		series.Points = append(series.Points, p)
	}
	return series, rows.Err()
}

// StoreDailySeries upserts every point of the series in one batch
func (r *PriceRepository) StoreDailySeries(ctx context.Context, series models.AssetSeries) error {
	if len(series.Points) == 0 {
		return nil
	}
	symbol := strings.ToUpper(series.Symbol)

	query := `
		INSERT INTO fact_price (symbol, date, close, missing)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, date) DO UPDATE
		SET close = EXCLUDED.close, missing = EXCLUDED.missing
	`

	batch := &pgx.Batch{}
	for _, p := range series.Points {
		var closePrice *float64
		if !p.Missing {
			c := p.Close
			closePrice = &c
		}
		batch.Queue(query, symbol, p.Date, closePrice, p.Missing)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range series.Points {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to store price: %w", err)
		}
	}
	return nil
}

// GetPriceRange retrieves the stored date range for a symbol, nil when nothing is stored
func (r *PriceRepository) GetPriceRange(ctx context.Context, symbol string) (*PriceRange, error) {
	query := `
		SELECT symbol, start_date, end_date, next_update
		FROM fact_price_range
		WHERE symbol = $1
	`
	pr := &PriceRange{}
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(symbol)).Scan(
		&pr.Symbol, &pr.StartDate, &pr.EndDate, &pr.NextUpdate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}
	return pr, nil
}

// UpsertPriceRange inserts or updates the stored date range for a symbol
// It expands the range using LEAST/GREATEST to merge with existing data
func (r *PriceRepository) UpsertPriceRange(ctx context.Context, symbol string, startDate, endDate, nextUpdate time.Time) error {
	query := `
		INSERT INTO fact_price_range (symbol, start_date, end_date, next_update)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol) DO UPDATE
		SET start_date = LEAST(fact_price_range.start_date, EXCLUDED.start_date),
		    end_date = GREATEST(fact_price_range.end_date, EXCLUDED.end_date),
		    next_update = EXCLUDED.next_update
	`
	_, err := r.pool.Exec(ctx, query, strings.ToUpper(symbol), startDate, endDate, nextUpdate)
	if err != nil {
		return fmt.Errorf("failed to upsert price range: %w", err)
	}
	return nil
}

// DeleteSymbol removes every stored row of symbol
func (r *PriceRepository) DeleteSymbol(ctx context.Context, symbol string) error {
	symbol = strings.ToUpper(symbol)
	if _, err := r.pool.Exec(ctx, `DELETE FROM fact_price WHERE symbol = $1`, symbol); err != nil {
		return fmt.Errorf("failed to delete prices: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM fact_price_range WHERE symbol = $1`, symbol); err != nil {
		return fmt.Errorf("failed to delete price range: %w", err)
	}
	return nil
}
