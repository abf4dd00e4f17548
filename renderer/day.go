// Package renderer produces the markdown reports printed by the dbk tool.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/rmaia/daybook"
)

// DayMarkdown renders one day of the journal: its trades, the derived
// aggregates, and the risk gate's verdict.
func DayMarkdown(l *daybook.Ledger, day daybook.Date, gate daybook.GateState) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Session %s", day))

	r := l.Record(day)
	if r == nil || len(r.Trades) == 0 {
		doc.PlainText(fmt.Sprintf("No trades recorded. Balance: %s. Suggested entry: %s.",
			l.Money(l.Balance(day)), l.Money(l.EntrySize(day))))
		return doc.String()
	}

	rows := make([][]string, 0, len(r.Trades))
	for _, t := range r.Trades {
		rows = append(rows, []string{
			t.Time.Format("15:04:05"),
			t.Result.String(),
			l.Money(t.Stake).String(),
			t.Payout.String() + "%",
			l.Money(t.Profit()).SignedString(),
			t.ID,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Time", "Result", "Stake", "Payout", "Profit", "ID"},
		Rows:   rows,
	})

	doc.H2("Day")
	doc.Table(md.TableSet{
		Header: []string{"Wins", "Losses", "Net Profit", "Start", "End"},
		Rows: [][]string{{
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Losses),
			l.Money(r.NetProfit).SignedString(),
			l.Money(r.StartBalance).String(),
			l.Money(r.EndBalance).String(),
		}},
	})

	if reason := gate.Reason(); reason != "" {
		if gate.OverrideActive {
			doc.PlainText(fmt.Sprintf("Gate: %s, trading on override.", reason))
		} else {
			doc.PlainText(fmt.Sprintf("Gate: %s, new trades require an explicit override.", reason))
		}
	}

	return doc.String()
}
