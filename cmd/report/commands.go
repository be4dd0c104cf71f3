package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/app"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/portfolio"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	offline bool
	asJSON  bool
	dbPath  string
}

func (c *commonFlags) register(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip market price lookups.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
	f.StringVar(&c.dbPath, "db", "", "Reference database path. Empty uses the built-in tables.")
}

// env holds what a subcommand needs to run.
type env struct {
	store   *reference.Store
	prices  portfolio.PriceLookup
	log     *logrus.Logger
	cleanup func()
}

func (c *commonFlags) setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log)
	log.SetOutput(os.Stderr)

	e := &env{log: log, cleanup: func() {}}
	if c.dbPath == "" {
		e.store = reference.NewStore(nil, reference.Defaults(), log)
	} else {
		db, store, err := app.OpenReference(ctx, c.dbPath, log)
		if err != nil {
			return nil, err
		}
		e.store = store
		e.cleanup = func() { db.Close() }
	}

	if !c.offline {
		prices, closePrices, err := app.PriceLookup(ctx, cfg, log)
		if err != nil {
			e.cleanup()
			return nil, err
		}
		e.prices = prices
		closeStore := e.cleanup
		e.cleanup = func() {
			closePrices()
			closeStore()
		}
	}
	return e, nil
}

// generate builds a report from the statement files at paths.
func (c *commonFlags) generate(ctx context.Context, paths []string) (*model.Report, error) {
	e, err := c.setup(ctx)
	if err != nil {
		return nil, err
	}
	defer e.cleanup()

	var uploads []service.UploadedFile
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		uploads = append(uploads, service.UploadedFile{Name: filepath.Base(p), Body: f})
	}

	return service.NewReportService(e.store, e.prices, e.log).Generate(ctx, uploads)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type summaryCmd struct {
	commonFlags
}

func (*summaryCmd) Name() string { return "summary" }

func (*summaryCmd) Synopsis() string {
	return "print the per-security summary of one or more statements"
}

func (*summaryCmd) Usage() string {
	return `report summary [-offline] [-json] [-db <path>] <statement.csv>...

  Consolidates the trades of every statement by symbol and prints the net
  quantity, position, totals in USD, INR, EUR and GBP, the annualised return
  and the current holding value.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one statement is required")
		return subcommands.ExitUsageError
	}
	report, err := c.generate(ctx, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		err = writeJSON(os.Stdout, report.Summary)
	} else {
		err = printSummary(os.Stdout, report.Summary)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type historyCmd struct {
	commonFlags
}

func (*historyCmd) Name() string { return "history" }

func (*historyCmd) Synopsis() string {
	return "print the daily portfolio value"
}

func (*historyCmd) Usage() string {
	return `report history [-offline] [-json] [-db <path>] <statement.csv>...

  Prints the portfolio value for every day from the first to the last trade.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one statement is required")
		return subcommands.ExitUsageError
	}
	// The history needs no market prices.
	c.offline = true
	report, err := c.generate(ctx, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		err = writeJSON(os.Stdout, report.TimeSeries)
	} else {
		err = printHistory(os.Stdout, report.TimeSeries)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type referenceCmd struct {
	commonFlags
}

func (*referenceCmd) Name() string { return "reference" }

func (*referenceCmd) Synopsis() string {
	return "print the split and exchange-rate tables"
}

func (*referenceCmd) Usage() string {
	return `report reference [-json] [-db <path>]

  Prints the stock splits, the dated exchange rates and the conversion
  factors applied to reports.
`
}

func (c *referenceCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *referenceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.offline = true
	e, err := c.setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.cleanup()

	data := e.store.Current().Export()
	if c.asJSON {
		err = writeJSON(os.Stdout, data)
	} else {
		err = printReference(os.Stdout, data)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
