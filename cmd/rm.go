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

type rmCmd struct {
	date string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a trade from a day" }
func (*rmCmd) Usage() string {
	return `dbk rm [-d <date>] <trade-id>...

  Deletes trades from the given day and recomputes the journal. Deleting a
  trade that does not exist is not an error.
`
}

func (p *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "0d", "Day to delete the trades from.")
}

func (p *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no trade id given.")
		return subcommands.ExitUsageError
	}

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

	for _, id := range f.Args() {
		if !ledger.DeleteTrade(day, id) {
			fmt.Fprintf(os.Stderr, "No trade %q on %s, nothing to do.\n", id, day)
		}
	}

	if err := EncodeLedger(ctx, ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DayMarkdown(ledger, day, daybook.NewGate(ledger, day).Evaluate()))
	return subcommands.ExitSuccess
}
