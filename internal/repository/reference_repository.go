package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

const defaultRateSetting = "default_exchange_rate"

// ReferenceRepository reads the split, exchange-rate and currency-factor tables.
type ReferenceRepository struct {
	db *sql.DB
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// LoadTables reads every reference table and builds an immutable snapshot.
func (r *ReferenceRepository) LoadTables(ctx context.Context) (*reference.Tables, error) {
	var defaultRate float64
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM reference_setting WHERE name = ?`, defaultRateSetting,
	).Scan(&defaultRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s is not set", apperrors.ErrFailedToRetrieveReference, defaultRateSetting)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reference_setting table: %w", err)
	}

	b := reference.NewBuilder(defaultRate)

	if err := r.loadSplits(ctx, b); err != nil {
		return nil, err
	}
	if err := r.loadRates(ctx, b); err != nil {
		return nil, err
	}
	if err := r.loadFactors(ctx, b); err != nil {
		return nil, err
	}

	tables, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveReference, err)
	}
	return tables, nil
}

func (r *ReferenceRepository) loadSplits(ctx context.Context, b *reference.Builder) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, effective_date, ratio
		FROM split_event
		ORDER BY symbol ASC, effective_date ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query split_event table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var symbol, dateStr string
		var ratio int
		if err := rows.Scan(&symbol, &dateStr, &ratio); err != nil {
			return fmt.Errorf("failed to scan split_event table results: %w", err)
		}
		date, err := ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("split_event %s: %w", symbol, err)
		}
		b.Split(symbol, date, ratio)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating split_event table: %w", err)
	}
	return nil
}

func (r *ReferenceRepository) loadRates(ctx context.Context, b *reference.Builder) error {
	rows, err := r.db.QueryContext(ctx, `SELECT rate_date, rate FROM exchange_rate ORDER BY rate_date ASC`)
	if err != nil {
		return fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr string
		var rate float64
		if err := rows.Scan(&dateStr, &rate); err != nil {
			return fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		date, err := ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("exchange_rate: %w", err)
		}
		b.Rate(date, rate)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating exchange_rate table: %w", err)
	}
	return nil
}

func (r *ReferenceRepository) loadFactors(ctx context.Context, b *reference.Builder) error {
	rows, err := r.db.QueryContext(ctx, `SELECT currency, factor FROM currency_factor`)
	if err != nil {
		return fmt.Errorf("failed to query currency_factor table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var currency string
		var factor float64
		if err := rows.Scan(&currency, &factor); err != nil {
			return fmt.Errorf("failed to scan currency_factor table results: %w", err)
		}
		b.Factor(currency, factor)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating currency_factor table: %w", err)
	}
	return nil
}

// UpsertRate stores the home-currency rate for a YYYY-MM-DD date.
func (r *ReferenceRepository) UpsertRate(ctx context.Context, date string, rate float64) error {
	if _, err := ParseTime(date); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exchange_rate (rate_date, rate) VALUES (?, ?)
		ON CONFLICT (rate_date) DO UPDATE SET rate = excluded.rate
	`, date, rate)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

// InsertSplit stores a split event.
func (r *ReferenceRepository) InsertSplit(ctx context.Context, symbol, effectiveDate string, ratio int) error {
	if ratio < 1 {
		return apperrors.ErrInvalidSplitRatio
	}
	if _, err := ParseTime(effectiveDate); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO split_event (symbol, effective_date, ratio) VALUES (?, ?, ?)`,
		symbol, effectiveDate, ratio,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split event: %w", err)
	}
	return nil
}
