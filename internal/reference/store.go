package reference

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Loader reads a complete table set from persistent storage.
type Loader interface {
	LoadTables(ctx context.Context) (*Tables, error)
}

// Store holds the current Tables snapshot and swaps it atomically on reload.
type Store struct {
	loader  Loader
	log     *logrus.Logger
	current atomic.Pointer[Tables]
}

// NewStore creates a store primed with initial. A nil loader makes Reload a no-op.
func NewStore(loader Loader, initial *Tables, log *logrus.Logger) *Store {
	s := &Store{loader: loader, log: log}
	s.current.Store(initial)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Tables {
	return s.current.Load()
}

// Reload replaces the snapshot with freshly loaded tables. On failure the
// previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	t, err := s.loader.LoadTables(ctx)
	if err != nil {
		return fmt.Errorf("reload reference tables: %w", err)
	}
	s.current.Store(t)
	s.log.WithFields(logrus.Fields{
		"splits": len(t.Splits()),
		"rates":  len(t.rates),
	}).Info("reference tables reloaded")
	return nil
}

// Schedule registers a periodic reload on a new cron scheduler and starts it.
// The caller stops the returned scheduler on shutdown.
func (s *Store) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.Reload(ctx); err != nil {
			s.log.WithError(err).Warn("keeping previous reference tables")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
