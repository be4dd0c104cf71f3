package main

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/Rhymond/go-money"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

// formatMoney renders v in the display format of code, rounded to the
// currency's minor unit.
func formatMoney(v float64, code string) string {
	scale := math.Pow10(money.New(0, code).Currency().Fraction)
	return money.New(int64(math.Round(v*scale)), code).Display()
}

func formatEstimate(e model.Estimate) string {
	if !e.Available {
		return "n/a"
	}
	return strconv.FormatFloat(e.Value, 'f', 2, 64) + "%"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func printSummary(w io.Writer, rows []model.SecuritySummary) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Symbol\tQuantity\tPosition\tUSD\tINR\tEUR\tGBP\tXIRR\tHolding\t")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t", s.Symbol, strconv.FormatFloat(s.Quantity, 'f', -1, 64), s.Position)
		for _, code := range model.Currencies {
			fmt.Fprintf(tw, "%s\t", formatMoney(s.Totals.Get(code), code))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", formatEstimate(s.XIRR), formatMoney(s.HoldingValue.Get(model.HomeCurrency), model.HomeCurrency))
	}
	return tw.Flush()
}

func printHistory(w io.Writer, series model.TimeSeries) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Date\tUSD\tINR\tEUR\tGBP\t")
	for _, snap := range series {
		fmt.Fprintf(tw, "%s\t", snap.Date)
		for _, code := range model.Currencies {
			fmt.Fprintf(tw, "%s\t", formatMoney(snap.Value.Get(code), code))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printReference(w io.Writer, data model.ReferenceData) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Split\tEffective\tRatio\t")
	for _, s := range data.Splits {
		fmt.Fprintf(tw, "%s\t%s\t%d\t\n", s.Symbol, s.EffectiveDate.Format(reference.DateLayout), s.Ratio)
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintf(tw, "Date\t%s per USD\t\t\n", data.HomeCurrency)
	for _, day := range slices.Sorted(maps.Keys(data.ExchangeRates)) {
		fmt.Fprintf(tw, "%s\t%s\t\t\n", day, strconv.FormatFloat(data.ExchangeRates[day], 'f', -1, 64))
	}
	fmt.Fprintf(tw, "default\t%s\t\t\n", strconv.FormatFloat(data.DefaultRate, 'f', -1, 64))
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintln(tw, "Currency\tPer USD\t\t")
	for _, code := range slices.Sorted(maps.Keys(data.Factors)) {
		fmt.Fprintf(tw, "%s\t%s\t\t\n", code, strconv.FormatFloat(data.Factors[code], 'f', -1, 64))
	}
	return tw.Flush()
}
