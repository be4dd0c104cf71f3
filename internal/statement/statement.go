// Package statement parses brokerage CSV exports into canonical transactions.
//
// A statement must carry the columns Symbol, Quantity, T. Price and Date/Time.
// Header cells are matched after trimming whitespace (and a UTF-8 byte order
// mark) and ignoring case. A missing column rejects the whole file; a row whose
// quantity, price or date cannot be parsed is dropped on its own.
package statement

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

const (
	colSymbol   = "Symbol"
	colQuantity = "Quantity"
	colPrice    = "T. Price"
	colDate     = "Date/Time"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// dateLayouts are tried in order. The first is the Interactive Brokers
// activity statement format.
var dateLayouts = []string{
	"2006-01-02, 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Result is the parsed content of one statement.
type Result struct {
	Source       string
	Transactions []model.Transaction
	Dropped      []RowError
}

// RowError describes a row excluded from the result.
type RowError struct {
	Row    int
	Reason string
}

// Parse reads a CSV statement named source.
func Parse(source string, r io.Reader) (*Result, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &apperrors.ColumnError{Source: source, Missing: apperrors.RequiredColumns}
	}
	if err != nil {
		return nil, &apperrors.FileError{Source: source, Err: fmt.Errorf("%w: %w", apperrors.ErrInvalidCSV, err)}
	}

	index, err := columnIndex(source, header)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: source}
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &apperrors.FileError{Source: source, Err: fmt.Errorf("%w: %w", apperrors.ErrInvalidCSV, err)}
		}
		row++

		tx, reason := parseRow(record, index)
		if reason != "" {
			result.Dropped = append(result.Dropped, RowError{Row: row, Reason: reason})
			continue
		}
		tx.Source = source
		tx.Row = row
		result.Transactions = append(result.Transactions, tx)
	}

	return result, nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(source string, header []string) (map[string]int, error) {
	present := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := present[key]; !dup {
			present[key] = i
		}
	}

	index := make(map[string]int, len(apperrors.RequiredColumns))
	var missing []string
	for _, col := range apperrors.RequiredColumns {
		i, ok := present[normalizeHeader(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, &apperrors.ColumnError{Source: source, Missing: missing}
	}
	return index, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// parseRow converts one record. A non-empty reason means the row is invalid.
func parseRow(record []string, index map[string]int) (model.Transaction, string) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	symbol := field(colSymbol)
	if symbol == "" {
		return model.Transaction{}, "symbol: empty value"
	}
	quantity, err := parseNumber(field(colQuantity))
	if err != nil {
		return model.Transaction{}, fmt.Sprintf("quantity: %v", err)
	}
	price, err := parseNumber(field(colPrice))
	if err != nil {
		return model.Transaction{}, fmt.Sprintf("price: %v", err)
	}
	date, err := ParseDate(field(colDate))
	if err != nil {
		return model.Transaction{}, fmt.Sprintf("date: %v", err)
	}

	return model.Transaction{
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Date:     date,
	}, ""
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return d.InexactFloat64(), nil
}

// ParseDate parses a statement timestamp in any supported layout. The
// printed wall-clock time is kept and labelled UTC, so a zoned timestamp
// stays on the trade date the statement shows.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
