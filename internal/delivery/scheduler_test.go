package delivery

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	applied []string
}

func (r *recorder) apply(messageID, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, messageID+":"+status)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.applied))
	copy(out, r.applied)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestSchedulerAppliesStepsInOrder(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.apply)
	defer s.Close()

	s.Schedule("m1", []Step{
		{Status: "sent", After: 10 * time.Millisecond},
		{Status: "delivered", After: 30 * time.Millisecond},
	})
	waitFor(t, func() bool { return len(rec.snapshot()) == 2 })
	got := rec.snapshot()
	if got[0] != "m1:sent" || got[1] != "m1:delivered" {
		t.Fatalf("unexpected transitions: %v", got)
	}
}

func TestSchedulerCancelDropsPending(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.apply)
	defer s.Close()

	s.Schedule("m1", []Step{{Status: "sent", After: 50 * time.Millisecond}})
	s.Cancel("m1")
	time.Sleep(100 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no transitions after cancel, got %v", got)
	}
}

func TestSchedulerCloseStopsEverything(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.apply)

	s.Schedule("m1", []Step{{Status: "sent", After: 50 * time.Millisecond}})
	s.Schedule("m2", []Step{{Status: "sent", After: 50 * time.Millisecond}})
	s.Close()
	// Scheduling after close is ignored.
	s.Schedule("m3", []Step{{Status: "sent", After: time.Millisecond}})
	time.Sleep(100 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no transitions after close, got %v", got)
	}
}
