package daybook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The snapshot's interchange form is JSONL: one row per line, each line a
// JSON object discriminated by a "type" field over the brokerage, trade and
// goal variants. The format is human-readable and git-friendly; it is what
// `dbk export` and `dbk import` speak.

// RowType discriminates the persisted row variants.
type RowType string

const (
	RowBrokerage RowType = "brokerage"
	RowTrade     RowType = "trade"
	RowGoal      RowType = "goal"
)

// jbrokerage is the wire form of a Brokerage row.
type jbrokerage struct {
	Type           RowType         `json:"type"`
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	EntryMode      string          `json:"entryMode"`
	EntryValue     decimal.Decimal `json:"entryValue"`
	Payout         decimal.Decimal `json:"payout"`
	StopGain       int             `json:"stopGain"`
	StopLoss       int             `json:"stopLoss"`
	Currency       string          `json:"currency"`
}

// jtrade is the wire form of a TradeRow.
type jtrade struct {
	Type        RowType         `json:"type"`
	ID          string          `json:"id"`
	Day         Date            `json:"day"`
	BrokerageID string          `json:"brokerageId"`
	Result      string          `json:"result"`
	Stake       decimal.Decimal `json:"stake"`
	Payout      decimal.Decimal `json:"payout"`
	Time        time.Time       `json:"time"`
}

// jgoal is the wire form of a Goal row.
type jgoal struct {
	Type   RowType         `json:"type"`
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Period string          `json:"period"`
}

// EncodeSnapshot writes the snapshot as JSONL: brokerages first, then trade
// rows in their snapshot order, then goals.
func EncodeSnapshot(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	for _, b := range snap.Brokerages {
		row := jbrokerage{
			Type:           RowBrokerage,
			ID:             b.ID,
			Name:           b.Name,
			InitialBalance: b.InitialBalance,
			EntryMode:      b.EntryMode.String(),
			EntryValue:     b.EntryValue,
			Payout:         b.Payout,
			StopGain:       b.StopGain,
			StopLoss:       b.StopLoss,
			Currency:       b.Currency,
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding brokerage %s: %w", b.ID, err)
		}
	}
	for _, t := range snap.Trades {
		row := jtrade{
			Type:        RowTrade,
			ID:          t.ID,
			Day:         t.Day,
			BrokerageID: t.BrokerageID,
			Result:      t.Result.String(),
			Stake:       t.Stake,
			Payout:      t.Payout,
			Time:        t.Time.UTC(),
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding trade %s: %w", t.ID, err)
		}
	}
	for _, g := range snap.Goals {
		row := jgoal{Type: RowGoal, ID: g.ID, Name: g.Name, Amount: g.Amount, Period: g.Period}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding goal %s: %w", g.ID, err)
		}
	}
	return nil
}

// DecodeSnapshot reads a JSONL stream of tagged rows back into a Snapshot.
// Empty lines are skipped; an unknown row type is an error.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	snap := &Snapshot{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Type RowType `json:"type"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify row in line %q: %w", string(line), err)
		}

		switch identifier.Type {
		case RowBrokerage:
			var row jbrokerage
			if err := json.Unmarshal(line, &row); err != nil {
				return nil, fmt.Errorf("decoding brokerage line %q: %w", string(line), err)
			}
			mode, err := ParseEntryMode(row.EntryMode)
			if err != nil {
				return nil, fmt.Errorf("decoding brokerage %s: %w", row.ID, err)
			}
			snap.Brokerages = append(snap.Brokerages, Brokerage{
				ID:             row.ID,
				Name:           row.Name,
				InitialBalance: row.InitialBalance,
				EntryMode:      mode,
				EntryValue:     row.EntryValue,
				Payout:         row.Payout,
				StopGain:       row.StopGain,
				StopLoss:       row.StopLoss,
				Currency:       row.Currency,
			})
		case RowTrade:
			var row jtrade
			if err := json.Unmarshal(line, &row); err != nil {
				return nil, fmt.Errorf("decoding trade line %q: %w", string(line), err)
			}
			result, err := ParseTradeResult(row.Result)
			if err != nil {
				return nil, fmt.Errorf("decoding trade %s: %w", row.ID, err)
			}
			snap.Trades = append(snap.Trades, TradeRow{
				Day:         row.Day,
				BrokerageID: row.BrokerageID,
				Trade: Trade{
					ID:     row.ID,
					Result: result,
					Stake:  row.Stake,
					Payout: row.Payout,
					Time:   row.Time,
				},
			})
		case RowGoal:
			var row jgoal
			if err := json.Unmarshal(line, &row); err != nil {
				return nil, fmt.Errorf("decoding goal line %q: %w", string(line), err)
			}
			snap.Goals = append(snap.Goals, Goal{ID: row.ID, Name: row.Name, Amount: row.Amount, Period: row.Period})
		default:
			return nil, fmt.Errorf("unknown row type %q in line %q", identifier.Type, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return snap, nil
}
