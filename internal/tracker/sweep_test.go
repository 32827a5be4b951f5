package tracker

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftclock/internal/models"
)

func TestFinalizeDueClosesOnlyElapsedSessions(t *testing.T) {
	f := newFixture(t)

	other, err := f.store.CreateLocation(newFixtureLocationRequest("Night Clinic"))
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}

	// First location: exit long enough ago to be due.
	if err := f.enter(testT0); err != nil {
		t.Fatalf("enter: %v", err)
	}
	f.clock.Advance(4 * time.Hour)
	if err := f.exit(f.clock.Now()); err != nil {
		t.Fatalf("exit: %v", err)
	}

	// Second location: still inside the grace window at sweep time.
	if err := f.tracker.HandleEnter(enterEvent(other.ID, f.clock.Now())); err != nil {
		t.Fatalf("enter other: %v", err)
	}
	f.clock.Advance(4 * time.Minute)
	if err := f.tracker.HandleExit(exitEvent(other.ID, f.clock.Now())); err != nil {
		t.Fatalf("exit other: %v", err)
	}

	f.clock.Advance(4 * time.Minute) // first pending exit now 8m old, second 4m

	finalized, err := f.tracker.FinalizeDue()
	if err != nil {
		t.Fatalf("FinalizeDue: %v", err)
	}
	if finalized != 1 {
		t.Errorf("finalized = %d, want 1", finalized)
	}

	if session, _ := f.tracker.ActiveSession(f.location.ID); session != nil {
		t.Error("due session should be closed")
	}
	if session, _ := f.tracker.ActiveSession(other.ID); session == nil {
		t.Error("session inside grace window should stay open")
	} else if session.State != models.SessionPendingExit {
		t.Errorf("state = %q, want pending_exit", session.State)
	}
}

func TestFinalizeDueIsIdempotent(t *testing.T) {
	f := newFixture(t)

	if err := f.enter(testT0); err != nil {
		t.Fatalf("enter: %v", err)
	}
	f.clock.Advance(time.Hour)
	if err := f.exit(f.clock.Now()); err != nil {
		t.Fatalf("exit: %v", err)
	}
	f.clock.Advance(10 * time.Minute)

	if n, err := f.tracker.FinalizeDue(); err != nil || n != 1 {
		t.Fatalf("first FinalizeDue = %d, %v; want 1, nil", n, err)
	}
	if n, err := f.tracker.FinalizeDue(); err != nil || n != 0 {
		t.Errorf("second FinalizeDue = %d, %v; want 0, nil", n, err)
	}
}

func TestSweeperFinalizesPendingSessions(t *testing.T) {
	f := newFixture(t)

	if err := f.enter(testT0); err != nil {
		t.Fatalf("enter: %v", err)
	}
	f.clock.Advance(time.Hour)
	if err := f.exit(f.clock.Now()); err != nil {
		t.Fatalf("exit: %v", err)
	}
	f.clock.Advance(10 * time.Minute)

	// The sweeper runs one sweep immediately on start, which covers
	// sessions left pending across a restart.
	sweeper := NewSweeper(f.tracker, zap.NewNop(), time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		closed := f.closedSessions(t)
		if len(closed) == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("sweeper never finalized the pending session")
}
