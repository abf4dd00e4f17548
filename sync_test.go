package daybook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore records saves and can be told to fail.
type fakeStore struct {
	mu    sync.Mutex
	saves []*Snapshot
	fail  error
}

func (s *fakeStore) Load(ctx context.Context, user string) (*Snapshot, error) {
	return &Snapshot{}, nil
}

func (s *fakeStore) Save(ctx context.Context, user string, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.saves = append(s.saves, snap)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *fakeStore) last() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saves) == 0 {
		return nil
	}
	return s.saves[len(s.saves)-1]
}

func newTestSaver(store *fakeStore, pull func() *Snapshot) *Saver {
	s := NewSaver(store, "u1", pull)
	s.Delay = 30 * time.Millisecond
	s.SavedFor = 30 * time.Millisecond
	return s
}

// A burst of requests collapses into a single trailing-edge save.
func TestSaverCoalescesBurst(t *testing.T) {
	store := &fakeStore{}
	s := newTestSaver(store, func() *Snapshot { return &Snapshot{} })

	for i := 0; i < 10; i++ {
		s.RequestSave()
		time.Sleep(2 * time.Millisecond)
	}
	if got := store.count(); got != 0 {
		t.Fatalf("save fired during the burst: %d", got)
	}

	time.Sleep(150 * time.Millisecond)
	if got := store.count(); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
}

// The snapshot is pulled when the timer fires, so it reflects mutations made
// after the request that armed it.
func TestSaverPullsLatestSnapshot(t *testing.T) {
	var mu sync.Mutex
	trades := 0
	store := &fakeStore{}
	s := newTestSaver(store, func() *Snapshot {
		mu.Lock()
		defer mu.Unlock()
		snap := &Snapshot{}
		for i := 0; i < trades; i++ {
			snap.Trades = append(snap.Trades, TradeRow{})
		}
		return snap
	})

	mu.Lock()
	trades = 1
	mu.Unlock()
	s.RequestSave()

	// a second mutation inside the quiet window
	time.Sleep(5 * time.Millisecond)
	mu.Lock()
	trades = 2
	mu.Unlock()
	s.RequestSave()

	time.Sleep(150 * time.Millisecond)
	if got := store.count(); got != 1 {
		t.Fatalf("saves = %d, want 1", got)
	}
	if got := len(store.last().Trades); got != 2 {
		t.Errorf("saved snapshot holds %d trades, want 2", got)
	}
}

func TestSaverStatusTransitions(t *testing.T) {
	store := &fakeStore{}
	s := newTestSaver(store, func() *Snapshot { return &Snapshot{} })

	if got, _ := s.Status(); got != SaveIdle {
		t.Fatalf("initial status = %v", got)
	}
	s.RequestSave()
	time.Sleep(45 * time.Millisecond)
	if got, _ := s.Status(); got != SaveSaved {
		t.Errorf("status after save = %v, want saved", got)
	}
	time.Sleep(100 * time.Millisecond)
	if got, _ := s.Status(); got != SaveIdle {
		t.Errorf("status after display window = %v, want idle", got)
	}
}

// A failed save surfaces as status, keeps local state untouched, and is only
// retried on the next request.
func TestSaverErrorAndRearm(t *testing.T) {
	store := &fakeStore{fail: errors.New("remote unavailable")}
	s := newTestSaver(store, func() *Snapshot { return &Snapshot{} })

	s.RequestSave()
	time.Sleep(100 * time.Millisecond)
	status, err := s.Status()
	if status != SaveError || err == nil {
		t.Fatalf("status = %v, err = %v; want error state", status, err)
	}
	if got := store.count(); got != 0 {
		t.Fatalf("failed save recorded: %d", got)
	}

	// no automatic retry
	time.Sleep(100 * time.Millisecond)
	if got := store.count(); got != 0 {
		t.Fatal("save retried without a new request")
	}

	// the next qualifying mutation re-arms and succeeds
	store.mu.Lock()
	store.fail = nil
	store.mu.Unlock()
	s.RequestSave()
	time.Sleep(100 * time.Millisecond)
	if got := store.count(); got != 1 {
		t.Errorf("saves after re-arm = %d, want 1", got)
	}
	if status, _ := s.Status(); status == SaveError {
		t.Error("error status must clear after a successful save")
	}
}

func TestSaverFlush(t *testing.T) {
	store := &fakeStore{}
	s := newTestSaver(store, func() *Snapshot { return &Snapshot{} })
	s.Delay = time.Hour // would never fire on its own

	s.RequestSave()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := store.count(); got != 1 {
		t.Errorf("saves after flush = %d, want 1", got)
	}

	// nothing pending: flush is a no-op
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := store.count(); got != 1 {
		t.Errorf("saves after second flush = %d, want 1", got)
	}
}
