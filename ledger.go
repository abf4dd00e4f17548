package daybook

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/rmaia/daybook/date"
	"github.com/shopspring/decimal"
)

// Ledger is the set of all daily records for the active brokerage, keyed by
// day. It is the single owner of the journal's mutable state: every mutation
// goes through AddTrades or DeleteTrade and immediately triggers a full
// Recalibration, so the derived balances are never stale.
//
// The Ledger is not safe for concurrent use; the journal has a single logical
// owner and all mutations are synchronous.
type Ledger struct {
	brokerage Brokerage
	extra     []Brokerage // inactive brokerage rows, pass-through only
	records   map[string]*DailyRecord
	goals     []Goal
}

// NewLedger creates an empty ledger for the given brokerage configuration.
func NewLedger(b Brokerage) (*Ledger, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid brokerage: %w", err)
	}
	return &Ledger{
		brokerage: b,
		records:   make(map[string]*DailyRecord),
	}, nil
}

// Brokerage returns the active brokerage configuration.
func (l *Ledger) Brokerage() Brokerage { return l.brokerage }

// SetBrokerage replaces the active brokerage configuration and recalibrates,
// since the initial balance may have changed.
func (l *Ledger) SetBrokerage(b Brokerage) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid brokerage: %w", err)
	}
	l.brokerage = b
	l.Recalibrate()
	return nil
}

// Goals returns the goals, in the order they were loaded.
func (l *Ledger) Goals() []Goal { return l.goals }

// SetGoals replaces the goal list. Goals are dashboard inputs only and do not
// affect any balance.
func (l *Ledger) SetGoals(goals []Goal) { l.goals = goals }

// Money tags an exact amount with the brokerage's display currency.
func (l *Ledger) Money(v decimal.Decimal) Money { return M(v, l.brokerage.Currency) }

// Record returns the daily record for the given day, or nil if the day holds
// no record. The returned record is owned by the ledger; callers must not
// mutate it.
func (l *Ledger) Record(day Date) *DailyRecord {
	return l.records[day.String()]
}

// Records returns an iterator over all daily records in chronological order.
func (l *Ledger) Records() iter.Seq[*DailyRecord] {
	keys := slices.Sorted(maps.Keys(l.records))
	return func(yield func(*DailyRecord) bool) {
		for _, k := range keys {
			if !yield(l.records[k]) {
				return
			}
		}
	}
}

// Days returns the number of days holding at least one trade.
func (l *Ledger) Days() int {
	n := 0
	for _, r := range l.records {
		if len(r.Trades) > 0 {
			n++
		}
	}
	return n
}

// EntrySize suggests the stake for a new trade on the given day, following
// the brokerage's entry sizing mode. The reference balance is the end balance
// of the day itself when it already holds a record, otherwise the end balance
// of the most recent earlier non-empty day, otherwise the initial balance.
func (l *Ledger) EntrySize(day Date) decimal.Decimal {
	if l.brokerage.EntryMode == FixedEntry {
		return l.brokerage.EntryValue
	}
	balance := l.balanceFor(day)
	return balance.Mul(l.brokerage.EntryValue).Div(oneHundred)
}

// balanceFor returns the balance a new trade on the given day would draw on.
func (l *Ledger) balanceFor(day Date) decimal.Decimal {
	if r, ok := l.records[day.String()]; ok {
		return r.EndBalance
	}
	balance := l.brokerage.InitialBalance
	for r := range l.Records() {
		if !r.Day.Before(day) {
			break
		}
		if len(r.Trades) > 0 {
			balance = r.EndBalance
		}
	}
	return balance
}

// Balance returns the account balance at the end of the given day: the end
// balance of the most recent non-empty record on or before it, or the initial
// balance when there is none.
func (l *Ledger) Balance(on Date) decimal.Decimal {
	balance := l.brokerage.InitialBalance
	for r := range l.Records() {
		if r.Day.After(on) {
			break
		}
		if len(r.Trades) > 0 {
			balance = r.EndBalance
		}
	}
	return balance
}

// CurrentBalance returns the balance after the chronologically last trade.
func (l *Ledger) CurrentBalance() decimal.Decimal {
	balance := l.brokerage.InitialBalance
	for r := range l.Records() {
		if len(r.Trades) > 0 {
			balance = r.EndBalance
		}
	}
	return balance
}

// NetProfit sums the net profit of all days inside the range.
func (l *Ledger) NetProfit(rg date.Range) decimal.Decimal {
	total := decimal.Zero
	for r := range l.Records() {
		if rg.Contains(r.Day) {
			total = total.Add(r.NetProfit)
		}
	}
	return total
}

// WinRate returns the share of winning trades over all recorded trades.
func (l *Ledger) WinRate() Percent {
	wins, total := 0, 0
	for _, r := range l.records {
		wins += r.Wins
		total += r.Wins + r.Losses
	}
	if total == 0 {
		return 0
	}
	return Percent(100 * float64(wins) / float64(total))
}

// AddTrades records a batch of outcomes on the given day: wins trades with
// result Win and losses trades with result Loss, all sharing the same stake
// and payout, each with a fresh identifier and the current timestamp. The
// day's record is created if absent. The ledger is recalibrated before
// returning.
//
// Validation failures reject the whole batch before any mutation.
func (l *Ledger) AddTrades(day Date, wins, losses int, stake, payout decimal.Decimal) ([]Trade, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("cannot add trades: no day given")
	}
	if wins < 0 || losses < 0 {
		return nil, fmt.Errorf("cannot add trades: negative counts")
	}
	if wins+losses == 0 {
		return nil, fmt.Errorf("cannot add trades: nothing to record")
	}

	trades := make([]Trade, 0, wins+losses)
	for i := 0; i < wins; i++ {
		trades = append(trades, NewTrade(Win, stake, payout))
	}
	for i := 0; i < losses; i++ {
		trades = append(trades, NewTrade(Loss, stake, payout))
	}
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("cannot add trades: %w", err)
		}
	}

	key := day.String()
	r, ok := l.records[key]
	if !ok {
		r = &DailyRecord{Day: day, BrokerageID: l.brokerage.ID}
		l.records[key] = r
	}
	r.Trades = append(r.Trades, trades...)

	l.Recalibrate()
	return trades, nil
}

// DeleteTrade removes the trade with the given id from the given day and
// recalibrates. Deleting a trade that does not exist is a no-op, not an
// error: it reports false and leaves every balance and count unchanged.
func (l *Ledger) DeleteTrade(day Date, id string) bool {
	r, ok := l.records[day.String()]
	if !ok {
		return false
	}
	if !r.deleteTrade(id) {
		return false
	}
	l.Recalibrate()
	return true
}

// Recalibrate is the sole source of truth for all derived balances. It folds
// a running balance, seeded with the brokerage's initial balance, over every
// daily record in chronological order, deriving each record's aggregates
// from its start balance and trade sequence.
//
// The pass is total, deterministic and idempotent: it tolerates empty days
// and an empty ledger, and running it twice on the same input yields the
// same output.
func (l *Ledger) Recalibrate() {
	running := l.brokerage.InitialBalance
	for r := range l.Records() {
		r.recompute(running)
		running = r.EndBalance
	}
}
