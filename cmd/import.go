package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rmaia/daybook"
)

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSONL journal, replacing the stored one" }
func (*importCmd) Usage() string {
	return `dbk import [-i <file>]

  Reads a JSONL journal (as written by export), recomputes it, and replaces
  the user's stored journal with it.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "File to read from. Defaults to stdin.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := os.Stdin
	if p.input != "" {
		var err error
		in, err = os.Open(p.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", p.input, err)
			return subcommands.ExitFailure
		}
		defer in.Close()
	}

	snap, err := daybook.DecodeSnapshot(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := daybook.FromSnapshot(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebuilding journal: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeLedger(ctx, ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d days of trades for %q.\n", ledger.Days(), *userID)
	return subcommands.ExitSuccess
}
