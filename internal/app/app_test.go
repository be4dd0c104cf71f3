package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/testutil"
)

func TestOpenReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reference.db")

	db, store, err := OpenReference(context.Background(), path, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, []string{"AAPL", "TSLA"}, store.Current().Symbols())

	testutil.CreateRate(t, db, "2021-01-04", 73.1)
	require.NoError(t, store.Reload(context.Background()))
	assert.Equal(t, 73.1, store.Current().RateOn(testutil.Day(2021, time.January, 4)))
}

func TestPriceLookup(t *testing.T) {
	ctx := context.Background()
	log := logging.Discard()

	t.Run("disabled yields no lookup", func(t *testing.T) {
		lookup, cleanup, err := PriceLookup(ctx, &config.Config{Yahoo: config.YahooConfig{Disabled: true}}, log)
		require.NoError(t, err)
		defer cleanup()
		assert.Nil(t, lookup)
	})

	t.Run("queries yahoo through the cache", func(t *testing.T) {
		srv := testutil.NewYahooServer(t).WithChart("AAPL",
			testutil.Bar{Date: testutil.Day(2020, time.August, 27), Close: 125.01},
		)
		mr := miniredis.RunT(t)

		cfg := &config.Config{
			Yahoo: config.YahooConfig{BaseURL: srv.URL, Timeout: time.Second, RateLimit: 10, Burst: 2, Concurrency: 2, WindowDays: 2},
			Redis: config.RedisConfig{Addr: mr.Addr(), TTL: time.Hour},
		}
		lookup, cleanup, err := PriceLookup(ctx, cfg, log)
		require.NoError(t, err)
		defer cleanup()

		txs := []model.Transaction{{Symbol: "AAPL", Date: testutil.Day(2020, time.August, 28)}}
		assert.Equal(t, model.Known(125.01), lookup.AdjustedPrices(ctx, txs)[0])
		assert.Equal(t, model.Known(125.01), lookup.AdjustedPrices(ctx, txs)[0])
		assert.Equal(t, 1, srv.Requests("AAPL"))
	})

	t.Run("unreachable redis fails fast", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, _, err := PriceLookup(ctx, &config.Config{Redis: config.RedisConfig{Addr: addr}}, log)
		assert.Error(t, err)
	})
}
