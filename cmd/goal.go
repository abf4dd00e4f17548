package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/date"
	"github.com/rmaia/daybook/renderer"
)

type goalCmd struct {
	name   string
	amount string
	period string
	rm     string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "list, add or remove profit goals" }
func (*goalCmd) Usage() string {
	return `dbk goal [-name <name> -amount <amount> [-period <period>]] [-rm <name>]

  Without flags, lists the goals and their progress. With -name and -amount,
  adds a goal for the given period (daily, weekly, monthly or yearly).
  With -rm, removes the named goal.

Usage Examples:
# Target 50 of profit per month.
$ dbk goal -name "Rent" -amount 50 -period monthly
`
}

func (p *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Name of the goal to add.")
	f.StringVar(&p.amount, "amount", "", "Target profit amount of the goal.")
	f.StringVar(&p.period, "period", "monthly", "Period the goal is measured over.")
	f.StringVar(&p.rm, "rm", "", "Name of the goal to remove.")
}

func (p *goalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	changed := false
	if p.rm != "" {
		goals := slices.DeleteFunc(ledger.Goals(), func(g daybook.Goal) bool { return g.Name == p.rm })
		ledger.SetGoals(goals)
		changed = true
	}

	if p.name != "" {
		if p.amount == "" {
			fmt.Fprintln(os.Stderr, "Error: a new goal needs an -amount.")
			return subcommands.ExitUsageError
		}
		amount, err := decimal.NewFromString(p.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := date.ParsePeriod(p.period); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitFailure
		}
		ledger.SetGoals(append(ledger.Goals(), daybook.Goal{
			ID:     uuid.NewString(),
			Name:   p.name,
			Amount: amount,
			Period: p.period,
		}))
		changed = true
	}

	if changed {
		if err := EncodeLedger(ctx, ledger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.SummaryMarkdown(ledger, daybook.Today()))
	return subcommands.ExitSuccess
}
