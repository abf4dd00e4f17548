package daybook

import (
	"github.com/shopspring/decimal"
)

// DailyRecord is one calendar day's ledger entry: the ordered trades recorded
// that day plus the aggregates derived from them.
//
// The derived fields are always a pure function of (StartBalance, Trades) and
// are only valid after a Recalibration pass. A DailyRecord normally exists
// only while it holds at least one trade; the ledger keeps an empty record
// around transiently after a deletion, and the snapshot drops it.
type DailyRecord struct {
	Day         Date    // identity and sort key
	BrokerageID string  // owning brokerage
	Trades      []Trade // insertion order

	// Derived by Recalibrate.
	Wins         int
	Losses       int
	NetProfit    decimal.Decimal
	StartBalance decimal.Decimal
	EndBalance   decimal.Decimal
}

// Trade returns the trade with the given id, or nil if the day does not hold it.
func (r *DailyRecord) Trade(id string) *Trade {
	for i := range r.Trades {
		if r.Trades[i].ID == id {
			return &r.Trades[i]
		}
	}
	return nil
}

// deleteTrade removes the trade with the given id, preserving the order of
// the remaining trades. It reports whether a trade was removed.
func (r *DailyRecord) deleteTrade(id string) bool {
	for i := range r.Trades {
		if r.Trades[i].ID == id {
			r.Trades = append(r.Trades[:i], r.Trades[i+1:]...)
			return true
		}
	}
	return false
}

// recompute derives the aggregates from the start balance and the trade
// sequence. It is total: an empty trade list yields a zero net profit and
// EndBalance == StartBalance.
func (r *DailyRecord) recompute(start decimal.Decimal) {
	r.StartBalance = start
	r.Wins, r.Losses = 0, 0
	net := decimal.Zero
	for _, t := range r.Trades {
		if t.Result == Win {
			r.Wins++
		} else {
			r.Losses++
		}
		net = net.Add(t.Profit())
	}
	r.NetProfit = net
	r.EndBalance = start.Add(net)
}
