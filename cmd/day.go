package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/renderer"
)

type dayCmd struct {
	date string
}

func (*dayCmd) Name() string     { return "day" }
func (*dayCmd) Synopsis() string { return "show one day of the journal" }
func (*dayCmd) Usage() string {
	return `dbk day [-d <date>]

  Shows the trades, aggregates and gate state of one day. On a day without
  trades it shows the carried balance and the suggested entry instead.
`
}

func (p *dayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "0d", "Day to show.")
}

func (p *dayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := daybook.ParseDate(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DayMarkdown(ledger, day, daybook.NewGate(ledger, day).Evaluate()))
	return subcommands.ExitSuccess
}
