package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/date"
)

// SummaryMarkdown renders the dashboard: balances, profitability and goal
// progress as of the given date.
func SummaryMarkdown(l *daybook.Ledger, on daybook.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	b := l.Brokerage()
	doc.H1(fmt.Sprintf("%s on %s", b.Name, on))

	month := date.NewRange(on, date.Monthly)
	total := l.CurrentBalance().Sub(b.InitialBalance)
	doc.Table(md.TableSet{
		Header: []string{"Balance", "Net Profit", "This Month", "Win Rate", "Days"},
		Rows: [][]string{{
			l.Money(l.Balance(on)).String(),
			l.Money(total).SignedString(),
			l.Money(l.NetProfit(month)).SignedString(),
			l.WinRate().String(),
			fmt.Sprintf("%d", l.Days()),
		}},
	})

	goals := l.Goals()
	if len(goals) == 0 {
		return doc.String()
	}

	doc.H2("Goals")
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		period, err := date.ParsePeriod(g.Period)
		if err != nil {
			period = date.Monthly
		}
		achieved := l.NetProfit(date.NewRange(on, period))
		progress := daybook.Percent(0)
		if g.Amount.IsPositive() {
			progress = daybook.Percent(100 * achieved.Div(g.Amount).InexactFloat64())
		}
		rows = append(rows, []string{
			g.Name,
			g.Period,
			l.Money(g.Amount).String(),
			l.Money(achieved).SignedString(),
			progress.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Goal", "Period", "Target", "Achieved", "Progress"},
		Rows:   rows,
	})

	return doc.String()
}
