package daybook

// GateState is the risk gate's verdict for one day.
type GateState struct {
	StopGainReached bool
	StopLossReached bool
	OverrideActive  bool
}

// Blocked reports whether new trade entry requires an explicit override.
func (s GateState) Blocked() bool {
	return (s.StopGainReached || s.StopLossReached) && !s.OverrideActive
}

// Reason names the limit that closed the gate. When both limits are reached
// at once, stop-gain takes precedence.
func (s GateState) Reason() string {
	switch {
	case s.StopGainReached:
		return "stop gain reached"
	case s.StopLossReached:
		return "stop loss reached"
	default:
		return ""
	}
}

// Gate decides whether newly requested trades may be appended to a day,
// given the brokerage's stop-gain/stop-loss trade counts and the day's
// current win/loss counts.
//
// The override is transient state: it is never persisted, it is engaged at
// most once per day by ConfirmOverride, and it resets whenever the selected
// day changes.
type Gate struct {
	ledger   *Ledger
	day      Date
	override bool
}

// NewGate creates a gate evaluating the given day of the ledger.
func NewGate(l *Ledger, day Date) *Gate {
	return &Gate{ledger: l, day: day}
}

// Day returns the currently selected day.
func (g *Gate) Day() Date { return g.day }

// Select changes the selected day. Moving to a different day drops any
// engaged override.
func (g *Gate) Select(day Date) {
	if day != g.day {
		g.override = false
	}
	g.day = day
}

// Evaluate reads the selected day's counts and returns the gate state. A
// threshold of 0 disables that check.
func (g *Gate) Evaluate() GateState {
	var wins, losses int
	if r := g.ledger.Record(g.day); r != nil {
		wins, losses = r.Wins, r.Losses
	}
	b := g.ledger.Brokerage()
	return GateState{
		StopGainReached: b.StopGain > 0 && wins >= b.StopGain,
		StopLossReached: b.StopLoss > 0 && losses >= b.StopLoss,
		OverrideActive:  g.override,
	}
}

// ConfirmOverride engages the override for the remainder of the selected
// day: Evaluate never again blocks admission for it, regardless of further
// win/loss accumulation.
func (g *Gate) ConfirmOverride() { g.override = true }
