package daybook

import (
	"context"
	"sync"
	"time"
)

// SaveStatus is the outward-facing state of the sync coordinator.
type SaveStatus int

const (
	// SaveIdle means no save is scheduled or running.
	SaveIdle SaveStatus = iota
	// SaveSaving means a save is in flight.
	SaveSaving
	// SaveSaved means the last save succeeded; shown for a short window.
	SaveSaved
	// SaveError means the last save failed; cleared by the next request.
	SaveError
)

func (s SaveStatus) String() string {
	switch s {
	case SaveIdle:
		return "idle"
	case SaveSaving:
		return "saving"
	case SaveSaved:
		return "saved"
	case SaveError:
		return "error"
	default:
		return "unknown"
	}
}

// Saver bridges the in-memory ledger to a Store without performing a write
// per mutation. RequestSave calls arriving within the quiet window coalesce
// into one outbound write of the full current snapshot: a trailing-edge
// debounce where only the last call of a burst fires, after the delay
// elapses with no further calls.
//
// The snapshot is pulled at fire time, not captured when the timer starts,
// so a save always reflects every mutation made during the window. The pull
// function runs on the saver's goroutine and must therefore be safe to call
// concurrently with local mutations.
//
// A failed save is not retried automatically; the next RequestSave re-arms
// the debounce and tries again.
type Saver struct {
	// Delay is the quiet window. Mutations arriving closer together than
	// this collapse into one save.
	Delay time.Duration
	// SavedFor is how long the Saved status is displayed before returning
	// to Idle.
	SavedFor time.Duration

	store Store
	user  string
	pull  func() *Snapshot

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	status  SaveStatus
	lastErr error
}

// NewSaver creates a sync coordinator writing the given user's snapshot to
// the store. pull must return the latest in-memory snapshot.
func NewSaver(store Store, user string, pull func() *Snapshot) *Saver {
	return &Saver{
		Delay:    2 * time.Second,
		SavedFor: 2 * time.Second,
		store:    store,
		user:     user,
		pull:     pull,
	}
}

// RequestSave schedules a save after the quiet window, resetting the window
// if one is already scheduled.
func (s *Saver) RequestSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == SaveError || s.status == SaveSaved {
		s.status = SaveIdle
	}
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.Delay, s.fire)
	} else {
		s.timer.Reset(s.Delay)
	}
}

// Status returns the current save status and, when it is SaveError, the
// error of the last attempt.
func (s *Saver) Status() (SaveStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Flush fires any pending save immediately and waits for its outcome. It is
// meant for orderly session teardown; without it an in-flight save is simply
// abandoned with the process.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	pending := s.pending
	s.pending = false
	if pending {
		s.status = SaveSaving
	}
	s.mu.Unlock()

	if !pending {
		_, err := s.Status()
		return err
	}
	return s.save(ctx)
}

// fire runs on the debounce timer's goroutine.
func (s *Saver) fire() {
	s.mu.Lock()
	if !s.pending {
		// a Flush got there first
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.status = SaveSaving
	s.mu.Unlock()

	s.save(context.Background())
}

func (s *Saver) save(ctx context.Context) error {
	snap := s.pull()
	err := s.store.Save(ctx, s.user, snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = SaveError
		s.lastErr = err
		return err
	}
	s.status = SaveSaved
	s.lastErr = nil
	time.AfterFunc(s.SavedFor, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.status == SaveSaved {
			s.status = SaveIdle
		}
	})
	return nil
}
