package daybook

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeResult is the outcome of a single recorded trade.
type TradeResult int

const (
	// Win pays the stake times the payout percentage.
	Win TradeResult = iota
	// Loss forfeits the stake.
	Loss
)

func (r TradeResult) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// ParseTradeResult parses a string into a TradeResult.
func ParseTradeResult(s string) (TradeResult, error) {
	switch s {
	case "win":
		return Win, nil
	case "loss":
		return Loss, nil
	default:
		return 0, fmt.Errorf("unknown trade result: %q", s)
	}
}

var oneHundred = decimal.NewFromInt(100)

// Trade is an atomic recorded outcome. It is immutable once created: the
// payout is captured at recording time so later brokerage edits never change
// the history.
type Trade struct {
	ID     string          // unique identifier
	Result TradeResult     // win or loss
	Stake  decimal.Decimal // entry value, always positive
	Payout decimal.Decimal // payout percentage at the time of the trade
	Time   time.Time       // creation timestamp
}

// NewTrade creates a Trade with a fresh identifier and the current timestamp.
func NewTrade(result TradeResult, stake, payout decimal.Decimal) Trade {
	return Trade{
		ID:     uuid.NewString(),
		Result: result,
		Stake:  stake,
		Payout: payout,
		Time:   time.Now(),
	}
}

// Profit returns the exact balance impact of the trade: stake*payout/100 for
// a win, -stake for a loss.
func (t Trade) Profit() decimal.Decimal {
	if t.Result == Win {
		return t.Stake.Mul(t.Payout).Div(oneHundred)
	}
	return t.Stake.Neg()
}

// Validate checks the trade for correctness before it enters the ledger.
func (t Trade) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trade has no identifier")
	}
	if !t.Stake.IsPositive() {
		return fmt.Errorf("trade stake must be positive, got %s", t.Stake)
	}
	if t.Payout.IsNegative() {
		return fmt.Errorf("trade payout must not be negative, got %s", t.Payout)
	}
	return nil
}
