package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/repository"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/testutil"
)

// TestReferenceRepository_LoadTables tests reading the reference tables.
//
// WHY: Every report is computed against these tables. The seeded rows must
// reproduce the built-in split and rate data exactly, and edits to the
// database must show up on the next load.
func TestReferenceRepository_LoadTables(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the seeded tables", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewReferenceRepository(db)

		tables, err := repo.LoadTables(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"AAPL", "TSLA"}, tables.Symbols())
		tsla := tables.SplitsFor("TSLA")
		require.Len(t, tsla, 2)
		assert.Equal(t, testutil.Day(2020, time.August, 31), tsla[0].EffectiveDate)
		assert.Equal(t, 5, tsla[0].Ratio)
		assert.Equal(t, 3, tsla[1].Ratio)

		assert.Equal(t, 74.0, tables.RateOn(testutil.Day(2020, time.August, 31)))
		assert.Equal(t, 79.0, tables.RateOn(testutil.Day(2022, time.August, 25)))
		assert.Equal(t, 75.0, tables.DefaultRate())
		assert.Equal(t, 0.85, tables.Factor(model.EUR))
		assert.Equal(t, 0.75, tables.Factor(model.GBP))
	})

	t.Run("picks up inserted rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewReferenceRepository(db)

		require.NoError(t, repo.InsertSplit(ctx, "NVDA", "2021-07-20", 4))
		require.NoError(t, repo.UpsertRate(ctx, "2021-01-04", 73.1))
		require.NoError(t, repo.UpsertRate(ctx, "2020-08-31", 74.5))

		tables, err := repo.LoadTables(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"AAPL", "NVDA", "TSLA"}, tables.Symbols())
		assert.Equal(t, 73.1, tables.RateOn(testutil.Day(2021, time.January, 4)))
		assert.Equal(t, 74.5, tables.RateOn(testutil.Day(2020, time.August, 31)))
		testutil.AssertRowCount(t, db, "exchange_rate", 3)
	})

	t.Run("empty tables fall back to the default rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CleanDatabase(t, db)
		repo := repository.NewReferenceRepository(db)

		tables, err := repo.LoadTables(ctx)
		require.NoError(t, err)

		assert.Empty(t, tables.Splits())
		assert.Equal(t, 75.0, tables.RateOn(testutil.Day(2020, time.August, 31)))
	})

	t.Run("missing default rate is an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		_, err := db.Exec(`DELETE FROM reference_setting`)
		require.NoError(t, err)

		_, err = repository.NewReferenceRepository(db).LoadTables(ctx)
		assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveReference)
	})
}

func TestReferenceRepository_Writes(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewReferenceRepository(db)

	t.Run("rejects ratios below one", func(t *testing.T) {
		err := repo.InsertSplit(ctx, "X", "2021-01-01", 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSplitRatio)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		assert.Error(t, repo.InsertSplit(ctx, "X", "01/01/2021", 2))
		assert.Error(t, repo.UpsertRate(ctx, "yesterday", 70))
	})

	t.Run("rejects duplicate splits", func(t *testing.T) {
		testutil.CreateSplit(t, db, "DUP", "2021-01-01", 2)
		assert.Error(t, repo.InsertSplit(ctx, "DUP", "2021-01-01", 3))
	})
}

func TestParseTime(t *testing.T) {
	got, err := repository.ParseTime("2020-08-31")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2020, time.August, 31), got)

	got, err = repository.ParseTime("2020-08-31T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2020, time.August, 31), got)

	got, err = repository.ParseTime("2020-08-31 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2020, time.August, 31), got)

	_, err = repository.ParseTime("31-08-2020")
	assert.Error(t, err)
}
