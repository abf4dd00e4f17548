package daybook

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Session is the interactive journal loop: commands mutate the ledger
// through the risk gate, and every mutation asks the Saver for an eventual
// save. The ledger is guarded by a mutex because the saver pulls snapshots
// on its own goroutine.
type Session struct {
	mu     sync.Mutex
	ledger *Ledger
	gate   *Gate
	saver  *Saver

	w io.Writer
	r *bufio.Reader
}

// NewSession creates a session over the ledger, writing prompts and reports
// to w and reading commands from r. The store may be nil, in which case
// nothing is persisted.
func NewSession(l *Ledger, store Store, user string, w io.Writer, r io.Reader) *Session {
	s := &Session{
		ledger: l,
		gate:   NewGate(l, Today()),
		w:      w,
		r:      bufio.NewReader(r),
	}
	if store != nil {
		s.saver = NewSaver(store, user, s.pull)
	}
	return s
}

// pull snapshots the ledger for the saver. It runs on the saver's goroutine.
func (s *Session) pull() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

func (s *Session) requestSave() {
	if s.saver != nil {
		s.saver.RequestSave()
	}
}

const prompt = "daybook> "

// Run starts the interactive loop. It returns when the user quits or the
// input is exhausted, after flushing any pending save.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.w, "Trading session %s. Type 'help' for commands, 'bye' to exit.\n", s.gate.Day())
	for {
		fmt.Fprint(s.w, prompt)
		line, err := s.r.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		if quit := s.handle(strings.TrimSpace(line)); quit {
			break
		}
	}
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Flush(ctx); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}
	return nil
}

// handle executes one command line and reports whether the session is over.
func (s *Session) handle(line string) (quit bool) {
	if line == "" {
		return false
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "bye", "quit", "exit":
		return true
	case "help":
		s.help()
	case "win", "w":
		s.record(args, 1, 0)
	case "loss", "l":
		s.record(args, 0, 1)
	case "rm":
		s.remove(args)
	case "day":
		s.selectDay(args)
	case "show":
		s.show()
	case "status":
		s.status()
	default:
		fmt.Fprintf(s.w, "unknown command %q, try 'help'\n", cmd)
	}
	return false
}

func (s *Session) help() {
	fmt.Fprint(s.w, `Commands:
  win [n]    record n winning trades (default 1) at the suggested stake
  loss [n]   record n losing trades (default 1) at the suggested stake
  rm <id>    delete a trade from the selected day
  day <date> select another day (resets any gate override)
  show       show the selected day
  status     show balance and save status
  bye        flush pending saves and exit
`)
}

// record admits a batch through the gate and appends it.
func (s *Session) record(args []string, winUnit, lossUnit int) {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			fmt.Fprintf(s.w, "invalid count %q\n", args[0])
			return
		}
		n = parsed
	}

	s.mu.Lock()
	state := s.gate.Evaluate()
	s.mu.Unlock()

	if state.Blocked() {
		fmt.Fprintf(s.w, "%s: record anyway? [y/N] ", state.Reason())
		answer, _ := s.r.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(s.w, "aborted, nothing recorded")
			return
		}
		s.mu.Lock()
		s.gate.ConfirmOverride()
		s.mu.Unlock()
	}

	s.mu.Lock()
	day := s.gate.Day()
	stake := s.ledger.EntrySize(day)
	payout := s.ledger.Brokerage().Payout
	_, err := s.ledger.AddTrades(day, n*winUnit, n*lossUnit, stake, payout)
	s.mu.Unlock()
	if err != nil {
		fmt.Fprintf(s.w, "cannot record: %v\n", err)
		return
	}

	s.requestSave()
	s.show()
}

func (s *Session) remove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.w, "usage: rm <trade-id>")
		return
	}
	s.mu.Lock()
	ok := s.ledger.DeleteTrade(s.gate.Day(), args[0])
	s.mu.Unlock()
	if !ok {
		// deleting an already-removed trade is fine
		fmt.Fprintf(s.w, "no trade %q on %s, nothing to do\n", args[0], s.gate.Day())
		return
	}
	s.requestSave()
	s.show()
}

func (s *Session) selectDay(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.w, "usage: day <date>")
		return
	}
	day, err := ParseDate(args[0])
	if err != nil {
		fmt.Fprintf(s.w, "cannot select day: %v\n", err)
		return
	}
	s.mu.Lock()
	s.gate.Select(day)
	s.mu.Unlock()
	fmt.Fprintf(s.w, "selected %s\n", day)
}

func (s *Session) show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.gate.Day()
	r := s.ledger.Record(day)
	if r == nil || len(r.Trades) == 0 {
		fmt.Fprintf(s.w, "%s: no trades, balance %s, suggested entry %s\n",
			day, s.ledger.Money(s.ledger.Balance(day)), s.ledger.Money(s.ledger.EntrySize(day)))
		return
	}
	fmt.Fprintf(s.w, "%s: %dW/%dL net %s balance %s\n",
		day, r.Wins, r.Losses, s.ledger.Money(r.NetProfit).SignedString(), s.ledger.Money(r.EndBalance))
	state := s.gate.Evaluate()
	if reason := state.Reason(); reason != "" {
		if state.OverrideActive {
			fmt.Fprintf(s.w, "gate: %s (override active)\n", reason)
		} else {
			fmt.Fprintf(s.w, "gate: %s\n", reason)
		}
	}
}

func (s *Session) status() {
	s.mu.Lock()
	balance := s.ledger.Money(s.ledger.CurrentBalance())
	rate := s.ledger.WinRate()
	s.mu.Unlock()
	fmt.Fprintf(s.w, "balance %s, win rate %s\n", balance, rate)
	if s.saver != nil {
		status, err := s.saver.Status()
		if err != nil {
			fmt.Fprintf(s.w, "save: %s (%v)\n", status, err)
		} else {
			fmt.Fprintf(s.w, "save: %s\n", status)
		}
	}
}
