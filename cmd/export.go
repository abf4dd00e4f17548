package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rmaia/daybook"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the journal as JSONL" }
func (*exportCmd) Usage() string {
	return `dbk export [-o <file>]

  Writes the whole journal (brokerages, trades and goals) as one JSON
  object per line, to stdout or to the given file.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "File to write to. Defaults to stdout.")
}

func (p *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if p.output != "" {
		out, err = os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := daybook.EncodeSnapshot(out, ledger.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting journal: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
