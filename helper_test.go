package daybook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec is a helper for tests to build decimals from consts.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testBrokerage returns the account configuration most tests start from:
// initial balance 10, fixed entry of 1, payout 80%.
func testBrokerage() Brokerage {
	b := DefaultBrokerage()
	b.ID = "b1"
	b.InitialBalance = dec(10)
	b.EntryMode = FixedEntry
	b.EntryValue = dec(1)
	b.Payout = dec(80)
	return b
}

// newTestLedger builds a ledger from testBrokerage, failing the test on error.
func newTestLedger(t *testing.T, b Brokerage) *Ledger {
	t.Helper()
	l, err := NewLedger(b)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	return l
}

// addTrades is a helper that fails the test when the batch is rejected.
func addTrades(t *testing.T, l *Ledger, day string, wins, losses int, stake, payout float64) []Trade {
	t.Helper()
	trades, err := l.AddTrades(MustParseDate(day), wins, losses, dec(stake), dec(payout))
	if err != nil {
		t.Fatalf("AddTrades(%s, %d, %d): %v", day, wins, losses, err)
	}
	return trades
}

// wantDec fails the test when got differs from want.
func wantDec(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}
