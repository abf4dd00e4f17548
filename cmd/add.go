package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/renderer"
)

type addCmd struct {
	date   string
	wins   int
	losses int
	stake  string
	payout string
	force  bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record winning and losing trades on a day" }
func (*addCmd) Usage() string {
	return `dbk add [-d <date>] [-w <wins>] [-l <losses>] [-stake <amount>] [-payout <pct>] [-force]

  Records a batch of trades on the given day and recomputes the journal.
  The stake defaults to the brokerage's suggested entry for that day, the
  payout to the brokerage's default. When the day's stop-gain or stop-loss
  is already reached, the command asks for confirmation first.

Usage Examples:
# Record two wins and a loss today.
$ dbk add -w 2 -l 1

# Record a loss yesterday at an explicit stake.
$ dbk add -d -1d -l 1 -stake 2.50
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "0d", "Day to record the trades on.")
	f.IntVar(&p.wins, "w", 0, "Number of winning trades to record.")
	f.IntVar(&p.losses, "l", 0, "Number of losing trades to record.")
	f.StringVar(&p.stake, "stake", "", "Stake per trade. Defaults to the suggested entry.")
	f.StringVar(&p.payout, "payout", "", "Payout percentage per trade. Defaults to the brokerage's.")
	f.BoolVar(&p.force, "force", false, "Record even when the day's stop limit is reached.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.wins <= 0 && p.losses <= 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to record, pass -w and/or -l.")
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

	gate := daybook.NewGate(ledger, day)
	if state := gate.Evaluate(); state.Blocked() {
		if !p.force && !confirm(fmt.Sprintf("%s on %s, record anyway?", state.Reason(), day)) {
			fmt.Fprintln(os.Stderr, "Aborted, nothing recorded.")
			return subcommands.ExitFailure
		}
		gate.ConfirmOverride()
	}

	stake := ledger.EntrySize(day)
	if p.stake != "" {
		if stake, err = decimal.NewFromString(p.stake); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing stake: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	payout := ledger.Brokerage().Payout
	if p.payout != "" {
		if payout, err = decimal.NewFromString(p.payout); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing payout: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if _, err := ledger.AddTrades(day, p.wins, p.losses, stake, payout); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording trades: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeLedger(ctx, ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DayMarkdown(ledger, day, gate.Evaluate()))
	return subcommands.ExitSuccess
}

// confirm asks a yes/no question on the terminal, defaulting to no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes"
}
