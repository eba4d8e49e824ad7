package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/epeers/marketwatch/internal/database"
	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymbol = "ZZTEST=X"

// setupRepo connects to PG_URL and skips the test when no database is configured
func setupRepo(t *testing.T) *repository.PriceRepository {
	t.Helper()
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL not set, skipping database test")
	}

	ctx := context.Background()
	db, err := database.New(ctx, pgURL)
	require.NoError(t, err)

	repo := repository.NewPriceRepository(db.Pool)
	require.NoError(t, repo.DeleteSymbol(ctx, testSymbol))
	t.Cleanup(func() {
		repo.DeleteSymbol(context.Background(), testSymbol)
		db.Close()
	})
	return repo
}

func date(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceRepository_StoreAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	err := repo.StoreDailySeries(ctx, models.AssetSeries{Symbol: testSymbol, Points: []models.PricePoint{
		{Date: date(2), Close: 1.10},
		{Date: date(3), Missing: true},
		{Date: date(4), Close: 1.12},
	}})
	require.NoError(t, err)

	series, err := repo.GetDailySeries(ctx, testSymbol, date(1), date(3))
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 1.10, series.Points[0].Close)
	assert.True(t, series.Points[1].Missing)

	// Upsert overwrites the missing close
	require.NoError(t, repo.StoreDailySeries(ctx, models.AssetSeries{Symbol: testSymbol, Points: []models.PricePoint{
		{Date: date(3), Close: 1.11},
	}}))
	series, err = repo.GetDailySeries(ctx, testSymbol, date(1), date(31))
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.False(t, series.Points[1].Missing)
	assert.Equal(t, 1.11, series.Points[1].Close)
}

func TestPriceRepository_PriceRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	pr, err := repo.GetPriceRange(ctx, testSymbol)
	require.NoError(t, err)
	assert.Nil(t, pr, "no range stored yet")

	next := time.Date(2024, 1, 10, 21, 30, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertPriceRange(ctx, testSymbol, date(5), date(9), next))
	// Ranges only widen
	require.NoError(t, repo.UpsertPriceRange(ctx, testSymbol, date(7), date(12), next.AddDate(0, 0, 3)))

	pr, err = repo.GetPriceRange(ctx, testSymbol)
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, date(5), pr.StartDate.UTC())
	assert.Equal(t, date(12), pr.EndDate.UTC())
	assert.True(t, pr.NextUpdate.Equal(next.AddDate(0, 0, 3)))
}
