// Package store persists journal snapshots in SQLite.
//
// It implements the daybook.Store contract: Load returns the user's full
// snapshot and Save replaces it wholesale. Save runs as a single
// delete-then-reinsert transaction, so a failure rolls the whole write back
// and a concurrent Load never observes a partial journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/date"
)

const schema = `
CREATE TABLE IF NOT EXISTS brokerages (
	user_id TEXT NOT NULL,
	id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	initial_balance TEXT NOT NULL,
	entry_mode TEXT NOT NULL,
	entry_value TEXT NOT NULL,
	payout TEXT NOT NULL,
	stop_gain INTEGER NOT NULL,
	stop_loss INTEGER NOT NULL,
	currency TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS trades (
	user_id TEXT NOT NULL,
	id TEXT NOT NULL,
	position INTEGER NOT NULL,
	day TEXT NOT NULL,
	brokerage_id TEXT NOT NULL,
	result TEXT NOT NULL,
	stake TEXT NOT NULL,
	payout TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE INDEX IF NOT EXISTS idx_trades_user_day ON trades(user_id, day);

CREATE TABLE IF NOT EXISTS goals (
	user_id TEXT NOT NULL,
	id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	amount TEXT NOT NULL,
	period TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);
`

// Amounts are stored as TEXT so they round-trip exactly; the position column
// preserves snapshot order across the delete-then-reinsert.

// SQLite is a Store backed by a local SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ daybook.Store = (*SQLite)(nil)

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing database %q: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

// Save fully replaces the user's persisted snapshot inside one transaction.
func (s *SQLite) Save(ctx context.Context, user string, snap *daybook.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting save for %q: %w", user, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				log.Printf("rollback after failed save for %q: %v", user, rbErr)
			}
		}
	}()

	for _, table := range []string{"brokerages", "trades", "goals"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", user); err != nil {
			return fmt.Errorf("clearing %s for %q: %w", table, user, err)
		}
	}

	for i, b := range snap.Brokerages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO brokerages (user_id, id, position, name, initial_balance, entry_mode, entry_value, payout, stop_gain, stop_loss, currency)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user, b.ID, i, b.Name, b.InitialBalance.String(), b.EntryMode.String(),
			b.EntryValue.String(), b.Payout.String(), b.StopGain, b.StopLoss, b.Currency)
		if err != nil {
			return fmt.Errorf("inserting brokerage %s: %w", b.ID, err)
		}
	}

	for i, t := range snap.Trades {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trades (user_id, id, position, day, brokerage_id, result, stake, payout, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user, t.ID, i, t.Day.String(), t.BrokerageID, t.Result.String(),
			t.Stake.String(), t.Payout.String(), t.Time.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting trade %s: %w", t.ID, err)
		}
	}

	for i, g := range snap.Goals {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO goals (user_id, id, position, name, amount, period)
			VALUES (?, ?, ?, ?, ?, ?)`,
			user, g.ID, i, g.Name, g.Amount.String(), g.Period)
		if err != nil {
			return fmt.Errorf("inserting goal %s: %w", g.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing save for %q: %w", user, err)
	}
	return nil
}

// Load returns the user's full snapshot. An unknown user yields an empty
// snapshot, not an error.
func (s *SQLite) Load(ctx context.Context, user string) (*daybook.Snapshot, error) {
	snap := &daybook.Snapshot{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, initial_balance, entry_mode, entry_value, payout, stop_gain, stop_loss, currency
		FROM brokerages WHERE user_id = ? ORDER BY position`, user)
	if err != nil {
		return nil, fmt.Errorf("loading brokerages for %q: %w", user, err)
	}
	defer rows.Close()
	for rows.Next() {
		var b daybook.Brokerage
		var initial, mode, entry, payout string
		if err := rows.Scan(&b.ID, &b.Name, &initial, &mode, &entry, &payout, &b.StopGain, &b.StopLoss, &b.Currency); err != nil {
			return nil, fmt.Errorf("scanning brokerage: %w", err)
		}
		if b.InitialBalance, err = decimal.NewFromString(initial); err != nil {
			return nil, fmt.Errorf("brokerage %s initial balance: %w", b.ID, err)
		}
		if b.EntryMode, err = daybook.ParseEntryMode(mode); err != nil {
			return nil, fmt.Errorf("brokerage %s: %w", b.ID, err)
		}
		if b.EntryValue, err = decimal.NewFromString(entry); err != nil {
			return nil, fmt.Errorf("brokerage %s entry value: %w", b.ID, err)
		}
		if b.Payout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("brokerage %s payout: %w", b.ID, err)
		}
		snap.Brokerages = append(snap.Brokerages, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading brokerages for %q: %w", user, err)
	}

	trows, err := s.db.QueryContext(ctx, `
		SELECT id, day, brokerage_id, result, stake, payout, created_at
		FROM trades WHERE user_id = ? ORDER BY position`, user)
	if err != nil {
		return nil, fmt.Errorf("loading trades for %q: %w", user, err)
	}
	defer trows.Close()
	for trows.Next() {
		var row daybook.TradeRow
		var day, result, stake, payout, created string
		if err := trows.Scan(&row.ID, &day, &row.BrokerageID, &result, &stake, &payout, &created); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		if row.Day, err = date.Parse(day); err != nil {
			return nil, fmt.Errorf("trade %s: %w", row.ID, err)
		}
		if row.Result, err = daybook.ParseTradeResult(result); err != nil {
			return nil, fmt.Errorf("trade %s: %w", row.ID, err)
		}
		if row.Stake, err = decimal.NewFromString(stake); err != nil {
			return nil, fmt.Errorf("trade %s stake: %w", row.ID, err)
		}
		if row.Payout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("trade %s payout: %w", row.ID, err)
		}
		if row.Time, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("trade %s timestamp: %w", row.ID, err)
		}
		snap.Trades = append(snap.Trades, row)
	}
	if err := trows.Err(); err != nil {
		return nil, fmt.Errorf("loading trades for %q: %w", user, err)
	}

	grows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, period FROM goals WHERE user_id = ? ORDER BY position`, user)
	if err != nil {
		return nil, fmt.Errorf("loading goals for %q: %w", user, err)
	}
	defer grows.Close()
	for grows.Next() {
		var g daybook.Goal
		var amount string
		if err := grows.Scan(&g.ID, &g.Name, &amount, &g.Period); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		if g.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("goal %s amount: %w", g.ID, err)
		}
		snap.Goals = append(snap.Goals, g)
	}
	if err := grows.Err(); err != nil {
		return nil, fmt.Errorf("loading goals for %q: %w", user, err)
	}

	return snap, nil
}
