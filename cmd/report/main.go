// Command report computes portfolio reports from brokerage CSV statements
// on the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&summaryCmd{}, "report")
	commander.Register(&historyCmd{}, "report")
	commander.Register(&referenceCmd{}, "reference data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
