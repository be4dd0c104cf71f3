package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Input validation errors are fatal to a report request. They are raised before
// any computation begins and surfaced verbatim to the caller.
var (
	// ErrMissingColumns indicates that an uploaded file lacks one or more required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrNoValidFiles indicates that the request did not contain any uploaded file.
	ErrNoValidFiles = errors.New("please upload at least one valid file")

	// ErrNoTransactions indicates that every row of every uploaded file was invalid.
	ErrNoTransactions = errors.New("no valid transactions found in the uploaded files")

	// ErrInvalidCSV indicates that a file could not be read as CSV.
	ErrInvalidCSV = errors.New("invalid CSV file")
)

// Lookup errors degrade a single row to a missing or default value.
var (
	// ErrPriceUnavailable indicates the price collaborator returned no usable observation.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrExchangeRateNotFound indicates no record for a specific date; callers use the default rate.
	ErrExchangeRateNotFound = errors.New("exchange rate for date not found")

	// ErrCacheMiss indicates that a quote was not present in the cache.
	ErrCacheMiss = errors.New("quote not cached")
)

// Numerical solver errors leave the XIRR of one security unavailable.
var (
	// ErrDegenerateCashFlows indicates a cash-flow series with no sign change or fewer than two flows.
	ErrDegenerateCashFlows = errors.New("degenerate cash flows")

	// ErrNoConvergence indicates the XIRR solver did not find a root.
	ErrNoConvergence = errors.New("xirr did not converge")
)

// Reference data errors.
var (
	// ErrInvalidSplitRatio indicates a split ratio below one.
	ErrInvalidSplitRatio = errors.New("split ratio must be at least 1")

	// ErrFailedToRetrieveReference indicates the reference tables could not be loaded.
	ErrFailedToRetrieveReference = errors.New("failed to retrieve reference data")
)

// RequiredColumns lists the columns every statement must provide, in display order.
var RequiredColumns = []string{"Symbol", "Quantity", "T. Price", "Date/Time"}

// ColumnError reports the columns a source file is missing.
type ColumnError struct {
	Source  string
	Missing []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("File %s must contain columns: %s (missing: %s)",
		e.Source, strings.Join(RequiredColumns, ", "), strings.Join(e.Missing, ", "))
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumns }

// FileError wraps a failure while processing a single uploaded file.
type FileError struct {
	Source string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Error processing %s: %v", e.Source, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// IsInputError reports whether err is a request-level validation failure.
func IsInputError(err error) bool {
	var fileErr *FileError
	var colErr *ColumnError
	return errors.As(err, &colErr) ||
		errors.As(err, &fileErr) ||
		errors.Is(err, ErrNoValidFiles) ||
		errors.Is(err, ErrNoTransactions) ||
		errors.Is(err, ErrInvalidCSV)
}
