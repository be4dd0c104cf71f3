package reference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

type stubLoader struct {
	tables *Tables
	err    error
	calls  int
}

func (s *stubLoader) LoadTables(context.Context) (*Tables, error) {
	s.calls++
	return s.tables, s.err
}

func TestStore_Reload(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps in the loaded tables", func(t *testing.T) {
		next, err := NewBuilder(80).Factor(model.EUR, 0.9).Factor(model.GBP, 0.8).Build()
		require.NoError(t, err)

		store := NewStore(&stubLoader{tables: next}, Defaults(), logging.Discard())
		require.NoError(t, store.Reload(ctx))
		assert.Equal(t, 80.0, store.Current().DefaultRate())
	})

	t.Run("keeps the previous snapshot on failure", func(t *testing.T) {
		initial := Defaults()
		store := NewStore(&stubLoader{err: errors.New("disk on fire")}, initial, logging.Discard())

		err := store.Reload(ctx)
		assert.ErrorContains(t, err, "disk on fire")
		assert.Same(t, initial, store.Current())
	})

	t.Run("nil loader is a no-op", func(t *testing.T) {
		initial := Defaults()
		store := NewStore(nil, initial, logging.Discard())

		require.NoError(t, store.Reload(ctx))
		assert.Same(t, initial, store.Current())
	})
}

func TestStore_Schedule(t *testing.T) {
	t.Run("rejects an invalid schedule", func(t *testing.T) {
		store := NewStore(nil, Defaults(), logging.Discard())
		_, err := store.Schedule(context.Background(), "every now and then")
		assert.Error(t, err)
	})

	t.Run("reloads on schedule", func(t *testing.T) {
		loader := &stubLoader{tables: Defaults()}
		store := NewStore(loader, Defaults(), logging.Discard())

		c, err := store.Schedule(context.Background(), "@every 1s")
		require.NoError(t, err)
		defer c.Stop()

		assert.Eventually(t, func() bool {
			return store.Current() == loader.tables
		}, 3*time.Second, 50*time.Millisecond)
	})
}
