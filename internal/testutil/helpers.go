package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/portfolio"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/repository"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// FixedNow is the valuation clock used by test services.
var FixedNow = time.Date(2023, time.January, 2, 12, 0, 0, 0, time.UTC)

// NewTestStore loads the reference tables of db into a store.
func NewTestStore(t *testing.T, db *sql.DB) *reference.Store {
	t.Helper()

	repo := repository.NewReferenceRepository(db)
	tables, err := repo.LoadTables(context.Background())
	if err != nil {
		t.Fatalf("Failed to load reference tables: %v", err)
	}
	return reference.NewStore(repo, tables, logging.Discard())
}

// NewTestReportService creates a ReportService over the reference tables of
// db. prices may be nil to run offline.
func NewTestReportService(t *testing.T, db *sql.DB, prices portfolio.PriceLookup) *service.ReportService {
	t.Helper()

	return service.NewReportService(NewTestStore(t, db), prices, logging.Discard()).
		WithClock(func() time.Time { return FixedNow })
}

// NewTestOfflineReportService creates a ReportService on the built-in tables
// without a database or price lookups.
func NewTestOfflineReportService(t *testing.T) *service.ReportService {
	t.Helper()

	store := reference.NewStore(nil, reference.Defaults(), logging.Discard())
	return service.NewReportService(store, nil, logging.Discard()).
		WithClock(func() time.Time { return FixedNow })
}

// NewTestSystemService creates a SystemService over db with price lookups off.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, NewTestStore(t, db), false)
}

// Day returns midnight UTC of the given date.
//
// Example usage:
//
//	d := testutil.Day(2020, time.August, 28)
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
