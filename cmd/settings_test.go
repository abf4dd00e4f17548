package cmd

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmaia/daybook"
)

func TestSettingsApply(t *testing.T) {
	b := daybook.DefaultBrokerage()

	p := &settingsCmd{stopGain: -1, stopLoss: -1}
	if changed, err := p.apply(&b); err != nil || changed {
		t.Fatalf("no flags: changed=%v err=%v", changed, err)
	}

	p = &settingsCmd{
		name:       "Main",
		initial:    "25.50",
		entryMode:  "percentage",
		entryValue: "2",
		stopGain:   3,
		stopLoss:   -1,
	}
	changed, err := p.apply(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("flags given but nothing changed")
	}
	if b.Name != "Main" || !b.InitialBalance.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("brokerage = %+v", b)
	}
	if b.EntryMode != daybook.PercentEntry || b.StopGain != 3 {
		t.Errorf("brokerage = %+v", b)
	}
	// untouched flags keep their values
	if b.StopLoss != 0 || b.Currency != "USD" {
		t.Errorf("brokerage = %+v", b)
	}

	p = &settingsCmd{initial: "not-a-number", stopGain: -1, stopLoss: -1}
	if _, err := p.apply(&b); err == nil {
		t.Error("bad amount must be rejected")
	}
}

func TestSettingsMarkdown(t *testing.T) {
	b := daybook.DefaultBrokerage()
	b.Name = "Main"
	b.StopGain = 3
	l, err := daybook.NewLedger(b)
	if err != nil {
		t.Fatal(err)
	}

	got := settingsMarkdown(l)
	for _, want := range []string{"Main", "fixed", "80%", "USD", "3"} {
		if !strings.Contains(got, want) {
			t.Errorf("settings missing %q:\n%s", want, got)
		}
	}
}
