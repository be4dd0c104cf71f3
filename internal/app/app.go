// Package app wires the components shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/database"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/portfolio"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/pricing"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/repository"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/yahoo"
)

// OpenReference opens and migrates the reference database and loads the
// first snapshot into a store.
func OpenReference(ctx context.Context, path string, log *logrus.Logger) (*sql.DB, *reference.Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := repository.NewReferenceRepository(db)
	tables, err := repo.LoadTables(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load reference tables: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"splits": len(tables.Splits()),
		"rates":  len(tables.Rates()),
	}).Info("reference tables loaded")

	return db, reference.NewStore(repo, tables, log), nil
}

// PriceLookup builds the market price enricher from cfg. It returns a nil
// lookup when quotes are disabled. The returned cleanup closes the Redis
// client, if any.
func PriceLookup(ctx context.Context, cfg *config.Config, log *logrus.Logger) (portfolio.PriceLookup, func(), error) {
	noop := func() {}
	if cfg.Yahoo.Disabled {
		log.Info("price lookups disabled")
		return nil, noop, nil
	}

	client := yahoo.NewClient(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout)
	source := pricing.NewRateLimited(pricing.NewYahooSource(client), cfg.Yahoo.RateLimit, cfg.Yahoo.Burst)

	var cache pricing.QuoteCache
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		rc, err := pricing.DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		redisClient = rc
		cache = pricing.NewRedisCache(rc, cfg.Redis.TTL)
		log.WithField("addr", cfg.Redis.Addr).Info("quote cache enabled")
	}

	enricher := pricing.NewEnricher(source, cache, cfg.Yahoo.WindowDays, cfg.Yahoo.Concurrency, log)
	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}
	return enricher, cleanup, nil
}
