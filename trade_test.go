package daybook

import (
	"testing"
)

func TestTradeProfit(t *testing.T) {
	tests := []struct {
		name          string
		result        TradeResult
		stake, payout float64
		want          float64
	}{
		{name: "win pays stake times payout", result: Win, stake: 1, payout: 80, want: 0.8},
		{name: "loss forfeits the stake", result: Loss, stake: 1, payout: 80, want: -1},
		{name: "fractional stake stays exact", result: Win, stake: 1.25, payout: 87, want: 1.0875},
		{name: "zero payout win", result: Win, stake: 2, payout: 0, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTrade(tc.result, dec(tc.stake), dec(tc.payout))
			wantDec(t, "Profit", tr.Profit(), tc.want)
		})
	}
}

func TestNewTradeIdentity(t *testing.T) {
	a := NewTrade(Win, dec(1), dec(80))
	b := NewTrade(Win, dec(1), dec(80))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("trades must carry fresh unique ids, got %q and %q", a.ID, b.ID)
	}
	if a.Time.IsZero() {
		t.Error("trade must carry a creation timestamp")
	}
}

func TestParseTradeResult(t *testing.T) {
	for in, want := range map[string]TradeResult{"win": Win, "loss": Loss} {
		got, err := ParseTradeResult(in)
		if err != nil || got != want {
			t.Errorf("ParseTradeResult(%q) = %v, %v", in, got, err)
		}
		if got.String() != in {
			t.Errorf("String() = %q, want %q", got.String(), in)
		}
	}
	if _, err := ParseTradeResult("draw"); err == nil {
		t.Error("ParseTradeResult(draw): want error")
	}
}

func TestParseEntryMode(t *testing.T) {
	for in, want := range map[string]EntryMode{"fixed": FixedEntry, "percentage": PercentEntry, "percent": PercentEntry} {
		got, err := ParseEntryMode(in)
		if err != nil || got != want {
			t.Errorf("ParseEntryMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEntryMode("martingale"); err == nil {
		t.Error("ParseEntryMode(martingale): want error")
	}
}

func TestTradeValidate(t *testing.T) {
	tr := NewTrade(Win, dec(1), dec(80))
	if err := tr.Validate(); err != nil {
		t.Errorf("valid trade rejected: %v", err)
	}
	tr.Stake = dec(0)
	if err := tr.Validate(); err == nil {
		t.Error("zero stake must be rejected")
	}
	tr = NewTrade(Loss, dec(1), dec(-5))
	if err := tr.Validate(); err == nil {
		t.Error("negative payout must be rejected")
	}
}

func TestMoneyFormatting(t *testing.T) {
	if got := M(10.6, "USD").String(); got != "$10.60" {
		t.Errorf("String() = %q", got)
	}
	if got := M(0.6, "USD").SignedString(); got != "+$0.60" {
		t.Errorf("SignedString() = %q", got)
	}
	if got := M(-1.25, "USD").SignedString(); got != "-$1.25" {
		t.Errorf("SignedString() = %q", got)
	}
	if got := M(0, "USD").SignedString(); got != "-" {
		t.Errorf("zero SignedString() = %q", got)
	}
	// formatting rounds, the underlying value stays exact
	m := M(1.0875, "USD")
	if got := m.String(); got != "$1.09" {
		t.Errorf("String() = %q", got)
	}
	wantDec(t, "Amount", m.Amount(), 1.0875)
}

func TestParseDateShorthands(t *testing.T) {
	today := Today()
	tests := []struct {
		in   string
		want Date
	}{
		{"0d", today},
		{"-1d", today.Add(-1)},
		{"+1w", today.Add(7)},
		{"2025-07-01", MustParseDate("2025-07-01")},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseDate("gibberish"); err == nil {
		t.Error("ParseDate(gibberish): want error")
	}
}
