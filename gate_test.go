package daybook

import "testing"

func gateLedger(t *testing.T, stopGain, stopLoss int) *Ledger {
	t.Helper()
	b := testBrokerage()
	b.StopGain = stopGain
	b.StopLoss = stopLoss
	return newTestLedger(t, b)
}

func TestGateEvaluate(t *testing.T) {
	day := MustParseDate("2025-07-01")
	tests := []struct {
		name               string
		stopGain, stopLoss int
		wins, losses       int
		wantGain, wantLoss bool
	}{
		{name: "open day", stopGain: 3, stopLoss: 2, wins: 2, losses: 1},
		{name: "stop gain reached", stopGain: 3, stopLoss: 2, wins: 3, losses: 0, wantGain: true},
		{name: "stop gain exceeded", stopGain: 3, stopLoss: 2, wins: 5, losses: 0, wantGain: true},
		{name: "stop loss reached", stopGain: 3, stopLoss: 2, wins: 0, losses: 2, wantLoss: true},
		{name: "both reached", stopGain: 1, stopLoss: 1, wins: 1, losses: 1, wantGain: true, wantLoss: true},
		{name: "zero thresholds disable checks", stopGain: 0, stopLoss: 0, wins: 50, losses: 50},
		{name: "no record yet", stopGain: 1, stopLoss: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := gateLedger(t, tc.stopGain, tc.stopLoss)
			if tc.wins+tc.losses > 0 {
				addTrades(t, l, day.String(), tc.wins, tc.losses, 1, 80)
			}
			g := NewGate(l, day)
			got := g.Evaluate()
			if got.StopGainReached != tc.wantGain || got.StopLossReached != tc.wantLoss {
				t.Errorf("Evaluate() = %+v, want gain=%v loss=%v", got, tc.wantGain, tc.wantLoss)
			}
			if got.OverrideActive {
				t.Error("override must start disengaged")
			}
			wantBlocked := tc.wantGain || tc.wantLoss
			if got.Blocked() != wantBlocked {
				t.Errorf("Blocked() = %v, want %v", got.Blocked(), wantBlocked)
			}
		})
	}
}

// A day with 3 wins against stopGain=3 blocks the 4th request until the
// override is confirmed; once confirmed the request proceeds and is recorded.
func TestGateOverrideAdmitsBlockedRequest(t *testing.T) {
	day := MustParseDate("2025-07-01")
	l := gateLedger(t, 3, 2)
	addTrades(t, l, day.String(), 3, 0, 1, 80)

	g := NewGate(l, day)
	if !g.Evaluate().Blocked() {
		t.Fatal("gate should block after the 3rd win")
	}

	g.ConfirmOverride()
	if g.Evaluate().Blocked() {
		t.Fatal("confirmed override must admit the request")
	}
	addTrades(t, l, day.String(), 1, 0, 1, 80)
	if got := l.Record(day).Wins; got != 4 {
		t.Errorf("wins = %d, want 4", got)
	}
}

// Once engaged, the override never blocks that day again, regardless of
// further accumulation.
func TestGateOverrideIsMonotonic(t *testing.T) {
	day := MustParseDate("2025-07-01")
	l := gateLedger(t, 3, 2)
	addTrades(t, l, day.String(), 3, 0, 1, 80)

	g := NewGate(l, day)
	g.ConfirmOverride()
	for i := 0; i < 5; i++ {
		addTrades(t, l, day.String(), 1, 1, 1, 80)
		if g.Evaluate().Blocked() {
			t.Fatalf("override lost after batch %d", i+1)
		}
	}
}

// Changing the selected day resets the override; coming back does not
// restore it.
func TestGateSelectResetsOverride(t *testing.T) {
	day1 := MustParseDate("2025-07-01")
	day2 := MustParseDate("2025-07-02")
	l := gateLedger(t, 1, 0)
	addTrades(t, l, day1.String(), 1, 0, 1, 80)

	g := NewGate(l, day1)
	g.ConfirmOverride()
	if g.Evaluate().Blocked() {
		t.Fatal("override should admit day1")
	}

	g.Select(day2)
	if g.Evaluate().OverrideActive {
		t.Error("override must reset on day change")
	}

	g.Select(day1)
	if !g.Evaluate().Blocked() {
		t.Error("returning to day1 must not restore the override")
	}

	// selecting the same day again keeps the engaged override
	g.ConfirmOverride()
	g.Select(day1)
	if g.Evaluate().Blocked() {
		t.Error("re-selecting the same day must keep the override")
	}
}

// When both limits are reached at once the stop-gain message wins.
func TestGateReasonPrecedence(t *testing.T) {
	s := GateState{StopGainReached: true, StopLossReached: true}
	if got := s.Reason(); got != "stop gain reached" {
		t.Errorf("Reason() = %q", got)
	}
	s = GateState{StopLossReached: true}
	if got := s.Reason(); got != "stop loss reached" {
		t.Errorf("Reason() = %q", got)
	}
	if got := (GateState{}).Reason(); got != "" {
		t.Errorf("open gate reason = %q", got)
	}
}
