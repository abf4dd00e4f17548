package daybook

import (
	"context"
	"fmt"
)

// TradeRow is the flat persisted form of one trade: the trade itself plus the
// day and brokerage that own it. The remote store deals only in rows; the
// engine folds them back into daily records on load.
type TradeRow struct {
	Day         Date
	BrokerageID string
	Trade
}

// Snapshot is the full persisted state of one user's journal: every
// brokerage, every trade row, every goal. Saves always carry a complete
// snapshot, never a diff.
type Snapshot struct {
	Brokerages []Brokerage
	Trades     []TradeRow
	Goals      []Goal
}

// Store is the persistence collaborator. Save fully replaces the user's
// persisted state; there is no partial-update variant. Implementations must
// make Save all-or-nothing so a concurrent Load never observes a partial
// journal.
type Store interface {
	Load(ctx context.Context, user string) (*Snapshot, error)
	Save(ctx context.Context, user string, snap *Snapshot) error
}

// Snapshot flattens the ledger into its persisted form. Rows come out in
// chronological day order, insertion order within a day. Days left empty by
// deletions are dropped: a daily record only exists in the authoritative
// store while it holds at least one trade.
func (l *Ledger) Snapshot() *Snapshot {
	snap := &Snapshot{
		Brokerages: append([]Brokerage{l.brokerage}, l.extra...),
		Goals:      l.goals,
	}
	for r := range l.Records() {
		for _, t := range r.Trades {
			snap.Trades = append(snap.Trades, TradeRow{Day: r.Day, BrokerageID: r.BrokerageID, Trade: t})
		}
	}
	return snap
}

// FromSnapshot rehydrates a ledger from the flat persisted state and runs one
// Recalibration to produce the initial aggregates.
//
// When the snapshot holds no brokerage a default one is synthesized. When it
// holds several, the first is the active one and the rest are carried along
// untouched.
func FromSnapshot(snap *Snapshot) (*Ledger, error) {
	active := DefaultBrokerage()
	var extra []Brokerage
	if len(snap.Brokerages) > 0 {
		active = snap.Brokerages[0]
		extra = snap.Brokerages[1:]
	}

	l, err := NewLedger(active)
	if err != nil {
		return nil, err
	}
	l.extra = extra
	l.goals = snap.Goals

	for _, row := range snap.Trades {
		if row.Day.IsZero() {
			return nil, fmt.Errorf("trade %s has no day", row.ID)
		}
		if err := row.Trade.Validate(); err != nil {
			return nil, fmt.Errorf("trade on %s: %w", row.Day, err)
		}
		key := row.Day.String()
		r, ok := l.records[key]
		if !ok {
			r = &DailyRecord{Day: row.Day, BrokerageID: row.BrokerageID}
			l.records[key] = r
		}
		r.Trades = append(r.Trades, row.Trade)
	}

	l.Recalibrate()
	return l, nil
}
