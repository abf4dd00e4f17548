package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmaia/daybook"
)

func testLedger(t *testing.T) *daybook.Ledger {
	t.Helper()
	b := daybook.DefaultBrokerage()
	b.Name = "Test Account"
	b.InitialBalance = decimal.NewFromInt(10)
	b.StopGain = 3
	l, err := daybook.NewLedger(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTrades(daybook.MustParseDate("2025-07-01"), 2, 1, decimal.NewFromInt(1), decimal.NewFromInt(80)); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestDayMarkdown(t *testing.T) {
	l := testLedger(t)
	got := DayMarkdown(l, daybook.MustParseDate("2025-07-01"), daybook.GateState{})

	for _, want := range []string{"Session 2025-07-01", "win", "loss", "$10.60", "+$0.60"} {
		if !strings.Contains(got, want) {
			t.Errorf("day report missing %q:\n%s", want, got)
		}
	}
}

func TestDayMarkdownEmptyDay(t *testing.T) {
	l := testLedger(t)
	got := DayMarkdown(l, daybook.MustParseDate("2025-07-02"), daybook.GateState{})
	if !strings.Contains(got, "No trades recorded") {
		t.Errorf("empty day report:\n%s", got)
	}
	// carries yesterday's closing balance
	if !strings.Contains(got, "$10.60") {
		t.Errorf("empty day report missing balance:\n%s", got)
	}
}

func TestDayMarkdownGateLine(t *testing.T) {
	l := testLedger(t)
	day := daybook.MustParseDate("2025-07-01")

	blocked := DayMarkdown(l, day, daybook.GateState{StopGainReached: true})
	if !strings.Contains(blocked, "stop gain reached") || !strings.Contains(blocked, "override") {
		t.Errorf("blocked gate line missing:\n%s", blocked)
	}

	overridden := DayMarkdown(l, day, daybook.GateState{StopGainReached: true, OverrideActive: true})
	if !strings.Contains(overridden, "trading on override") {
		t.Errorf("override gate line missing:\n%s", overridden)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	l := testLedger(t)
	l.SetGoals([]daybook.Goal{{ID: "g1", Name: "July", Amount: decimal.NewFromInt(6), Period: "monthly"}})

	got := SummaryMarkdown(l, daybook.MustParseDate("2025-07-15"))
	for _, want := range []string{"Test Account", "$10.60", "Goals", "July", "10.00%"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
