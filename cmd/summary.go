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

type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show balances, profitability and goal progress" }
func (*summaryCmd) Usage() string {
	return `dbk summary [-d <date>]

  Shows the journal dashboard as of the given date: balance, total and
  monthly net profit, win rate, and progress towards each goal.
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "0d", "Date the dashboard reports on.")
}

func (p *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := daybook.ParseDate(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(ledger, on))
	return subcommands.ExitSuccess
}
