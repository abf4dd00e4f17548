package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/rmaia/daybook"
)

type settingsCmd struct {
	name       string
	initial    string
	entryMode  string
	entryValue string
	payout     string
	stopGain   int
	stopLoss   int
	currency   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the brokerage settings" }
func (*settingsCmd) Usage() string {
	return `dbk settings [-name <name>] [-initial <amount>] [-entry-mode fixed|percentage]
             [-entry-value <v>] [-payout <pct>] [-stop-gain <n>] [-stop-loss <n>]
             [-currency <code>]

  Without flags, shows the active brokerage settings. With flags, changes
  them and recomputes every balance in the journal; changing the initial
  balance re-chains all days from the new starting point.

Usage Examples:
# Stake 2% of the balance per trade, stop after 3 wins or 2 losses.
$ dbk settings -entry-mode percentage -entry-value 2 -stop-gain 3 -stop-loss 2
`
}

func (p *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Display name of the brokerage.")
	f.StringVar(&p.initial, "initial", "", "Initial balance the journal starts from.")
	f.StringVar(&p.entryMode, "entry-mode", "", "Entry sizing mode: fixed or percentage.")
	f.StringVar(&p.entryValue, "entry-value", "", "Entry amount, or percentage of the balance.")
	f.StringVar(&p.payout, "payout", "", "Default payout percentage for new trades.")
	f.IntVar(&p.stopGain, "stop-gain", -1, "Winning trades per day before the gate closes, 0 disables.")
	f.IntVar(&p.stopLoss, "stop-loss", -1, "Losing trades per day before the gate closes, 0 disables.")
	f.StringVar(&p.currency, "currency", "", "Display currency code, e.g. USD or EUR.")
}

func (p *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	b := ledger.Brokerage()
	changed, err := p.apply(&b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if changed {
		if err := ledger.SetBrokerage(b); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying settings: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := EncodeLedger(ctx, ledger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(settingsMarkdown(ledger))
	return subcommands.ExitSuccess
}

// apply folds the given flags into the brokerage, reporting whether anything
// changed.
func (p *settingsCmd) apply(b *daybook.Brokerage) (changed bool, err error) {
	set := func(target *decimal.Decimal, name, v string) error {
		if v == "" {
			return nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("Error parsing %s: %w", name, err)
		}
		*target = d
		changed = true
		return nil
	}

	if p.name != "" {
		b.Name = p.name
		changed = true
	}
	if err := set(&b.InitialBalance, "-initial", p.initial); err != nil {
		return false, err
	}
	if p.entryMode != "" {
		mode, err := daybook.ParseEntryMode(p.entryMode)
		if err != nil {
			return false, fmt.Errorf("Error parsing -entry-mode: %w", err)
		}
		b.EntryMode = mode
		changed = true
	}
	if err := set(&b.EntryValue, "-entry-value", p.entryValue); err != nil {
		return false, err
	}
	if err := set(&b.Payout, "-payout", p.payout); err != nil {
		return false, err
	}
	if p.stopGain >= 0 {
		b.StopGain = p.stopGain
		changed = true
	}
	if p.stopLoss >= 0 {
		b.StopLoss = p.stopLoss
		changed = true
	}
	if p.currency != "" {
		b.Currency = p.currency
		changed = true
	}
	return changed, nil
}

func settingsMarkdown(l *daybook.Ledger) string {
	b := l.Brokerage()
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(b.Name)
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Initial balance", l.Money(b.InitialBalance).String()},
			{"Entry mode", b.EntryMode.String()},
			{"Entry value", b.EntryValue.String()},
			{"Payout", b.Payout.String() + "%"},
			{"Stop gain", fmt.Sprintf("%d", b.StopGain)},
			{"Stop loss", fmt.Sprintf("%d", b.StopLoss)},
			{"Currency", b.Currency},
		},
	})
	return doc.String()
}
