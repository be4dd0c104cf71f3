package testutil

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"io"
	"strconv"
	"testing"
	"time"
)

// IBKRDateTime is the Date/Time layout of an Interactive Brokers statement.
const IBKRDateTime = "2006-01-02, 15:04:05"

// StatementBuilder provides a fluent interface for creating CSV statements.
//
// Example usage:
//
//	// IBKR header with two trades
//	csv := testutil.NewStatement().
//	    Trade("AAPL", 10, 499.23, day).
//	    Trade("AAPL", -5, 130.1, later).
//	    String()
//
//	// Custom header to exercise column validation
//	csv := testutil.NewStatement().
//	    WithHeader("Symbol", "Quantity").
//	    Row("AAPL", "10").
//	    String()
type StatementBuilder struct {
	Header []string
	Rows   [][]string
}

// NewStatement creates a StatementBuilder with the IBKR trade columns.
func NewStatement() *StatementBuilder {
	return &StatementBuilder{
		Header: []string{"Symbol", "Quantity", "T. Price", "Date/Time", "Proceeds"},
	}
}

// WithHeader replaces the header row.
func (b *StatementBuilder) WithHeader(cols ...string) *StatementBuilder {
	b.Header = cols
	return b
}

// Row appends raw cells.
func (b *StatementBuilder) Row(cells ...string) *StatementBuilder {
	b.Rows = append(b.Rows, cells)
	return b
}

// Trade appends a well-formed trade for the default header.
func (b *StatementBuilder) Trade(symbol string, qty, price float64, at time.Time) *StatementBuilder {
	return b.Row(
		symbol,
		strconv.FormatFloat(qty, 'f', -1, 64),
		strconv.FormatFloat(price, 'f', -1, 64),
		at.UTC().Format(IBKRDateTime),
		strconv.FormatFloat(-qty*price, 'f', 2, 64),
	)
}

// String renders the statement as CSV.
func (b *StatementBuilder) String() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(b.Header)
	_ = w.WriteAll(b.Rows)
	return buf.String()
}

// Reader renders the statement as an io.Reader.
func (b *StatementBuilder) Reader() io.Reader {
	return bytes.NewBufferString(b.String())
}

// Convenience functions

// CreateSplit inserts a split event.
//
// Example usage:
//
//	testutil.CreateSplit(t, db, "NVDA", "2021-07-20", 4)
func CreateSplit(t *testing.T, db *sql.DB, symbol, effectiveDate string, ratio int) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO split_event (symbol, effective_date, ratio) VALUES (?, ?, ?)`,
		symbol, effectiveDate, ratio,
	)
	if err != nil {
		t.Fatalf("Failed to create test split: %v", err)
	}
}

// CreateRate inserts or replaces an exchange rate.
//
// Example usage:
//
//	testutil.CreateRate(t, db, "2021-01-04", 73.1)
func CreateRate(t *testing.T, db *sql.DB, date string, rate float64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT OR REPLACE INTO exchange_rate (rate_date, rate) VALUES (?, ?)`,
		date, rate,
	)
	if err != nil {
		t.Fatalf("Failed to create test exchange rate: %v", err)
	}
}
