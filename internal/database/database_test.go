package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))

	t.Run("seeds the reference tables", func(t *testing.T) {
		var splits, rates, factors int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM split_event").Scan(&splits))
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM exchange_rate").Scan(&rates))
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM currency_factor").Scan(&factors))

		assert.Equal(t, 3, splits)
		assert.Equal(t, 2, rates)
		assert.Equal(t, 2, factors)
	})

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, Migrate(db))

		v, err := Version(db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
	})

	t.Run("rejects ratios below one", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO split_event (symbol, effective_date, ratio) VALUES ('MSFT', '2003-02-18', 0)")
		assert.Error(t, err)
	})
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)

	assert.NoError(t, HealthCheck(db))
	db.Close()
	assert.Error(t, HealthCheck(db))
}
