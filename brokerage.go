package daybook

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryMode defines how the suggested stake for a new trade is sized.
type EntryMode int

const (
	// FixedEntry stakes a fixed amount on every trade.
	FixedEntry EntryMode = iota
	// PercentEntry stakes a percentage of the current balance.
	PercentEntry
)

func (m EntryMode) String() string {
	switch m {
	case FixedEntry:
		return "fixed"
	case PercentEntry:
		return "percentage"
	default:
		return "unknown"
	}
}

// ParseEntryMode parses a string into an EntryMode.
func ParseEntryMode(s string) (EntryMode, error) {
	switch s {
	case "fixed":
		return FixedEntry, nil
	case "percentage", "percent":
		return PercentEntry, nil
	default:
		return 0, fmt.Errorf("unknown entry mode: %q", s)
	}
}

// Brokerage is the configuration of one trading account: the initial balance
// every recalibration starts from, the entry sizing rule, the default payout,
// and the stop-gain/stop-loss trade counts the risk gate enforces.
//
// The engine assumes exactly one active brokerage. Additional brokerage rows
// survive load and save untouched, but only the first one is ever consulted.
type Brokerage struct {
	ID             string          // unique identifier
	Name           string          // display name
	InitialBalance decimal.Decimal // starting balance of the account, >= 0
	EntryMode      EntryMode       // fixed amount or percentage of balance
	EntryValue     decimal.Decimal // amount or percentage, per EntryMode
	Payout         decimal.Decimal // default payout percentage for new trades
	StopGain       int             // winning trades per day before the gate closes, 0 disables
	StopLoss       int             // losing trades per day before the gate closes, 0 disables
	Currency       string          // display currency code, e.g. "USD"
}

// DefaultBrokerage synthesizes the account configuration used when nothing
// has been persisted yet.
func DefaultBrokerage() Brokerage {
	return Brokerage{
		ID:             uuid.NewString(),
		Name:           "My Brokerage",
		InitialBalance: decimal.NewFromInt(0),
		EntryMode:      FixedEntry,
		EntryValue:     decimal.NewFromInt(1),
		Payout:         decimal.NewFromInt(80),
		StopGain:       0,
		StopLoss:       0,
		Currency:       "USD",
	}
}

// Validate checks the brokerage configuration.
func (b Brokerage) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("brokerage has no identifier")
	}
	if b.InitialBalance.IsNegative() {
		return fmt.Errorf("initial balance must not be negative, got %s", b.InitialBalance)
	}
	if b.EntryValue.IsNegative() {
		return fmt.Errorf("entry value must not be negative, got %s", b.EntryValue)
	}
	if b.Payout.IsNegative() {
		return fmt.Errorf("payout must not be negative, got %s", b.Payout)
	}
	if b.StopGain < 0 || b.StopLoss < 0 {
		return fmt.Errorf("stop-gain and stop-loss counts must not be negative")
	}
	return nil
}

// Goal is a target profit amount tied to a calendar period. Goals are
// read-only inputs to the dashboard; the ledger engine never mutates them.
type Goal struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Period string // "daily", "weekly", "monthly" or "yearly"
}
