// Package cmd implements the CLI application to manage a trading journal.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rmaia/daybook"
	"github.com/rmaia/daybook/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "journal")
	c.Register(&rmCmd{}, "journal")
	c.Register(&sessionCmd{}, "journal")

	c.Register(&dayCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&settingsCmd{}, "configuration")
	c.Register(&goalCmd{}, "configuration")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")

	c.Register(&analyzeCmd{}, "analysis")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "daybook.db", "Path to the journal database file")
var userID = flag.String("user", defaultUser(), "User whose journal to operate on")

func defaultUser() string {
	if u := os.Getenv("DAYBOOK_USER"); u != "" {
		return u
	}
	return "default"
}

// OpenStore opens the app journal database.
func OpenStore() (*store.SQLite, error) {
	return store.Open(*dbPath)
}

// DecodeLedger loads the user's journal from the app database. An unknown
// user yields a fresh ledger with a default brokerage.
func DecodeLedger(ctx context.Context) (*daybook.Ledger, error) {
	db, err := OpenStore()
	if err != nil {
		return nil, fmt.Errorf("opening journal database %q: %w", *dbPath, err)
	}
	defer db.Close()

	snap, err := db.Load(ctx, *userID)
	if err != nil {
		return nil, fmt.Errorf("loading journal for %q: %w", *userID, err)
	}
	return daybook.FromSnapshot(snap)
}

// EncodeLedger saves the ledger back into the app database.
func EncodeLedger(ctx context.Context, l *daybook.Ledger) error {
	db, err := OpenStore()
	if err != nil {
		return fmt.Errorf("opening journal database %q: %w", *dbPath, err)
	}
	defer db.Close()

	if err := db.Save(ctx, *userID, l.Snapshot()); err != nil {
		return fmt.Errorf("saving journal for %q: %w", *userID, err)
	}
	return nil
}
