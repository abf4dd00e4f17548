package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rmaia/daybook"
)

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "run an interactive trading session" }
func (*sessionCmd) Usage() string {
	return `dbk session

  Starts an interactive loop to journal trades as they happen. Mutations
  are saved in the background a moment after the journal goes quiet, and
  flushed when the session ends.
`
}

func (*sessionCmd) SetFlags(f *flag.FlagSet) {}

func (p *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database %q: %v\n", *dbPath, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	snap, err := db.Load(ctx, *userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal for %q: %v\n", *userID, err)
		return subcommands.ExitFailure
	}
	ledger, err := daybook.FromSnapshot(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebuilding journal: %v\n", err)
		return subcommands.ExitFailure
	}

	s := daybook.NewSession(ledger, db, *userID, os.Stdout, os.Stdin)
	if err := s.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
