package models

import (
	"testing"
	"time"
)

func TestDurationBetween(t *testing.T) {
	t0 := time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{"exact hours", t0.Add(8 * time.Hour), 480},
		{"rounds down", t0.Add(3*time.Minute + 20*time.Second), 3},
		{"rounds up", t0.Add(3*time.Minute + 40*time.Second), 4},
		{"zero", t0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationBetween(t0, tt.out); got != tt.want {
				t.Errorf("DurationBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSessionOpen(t *testing.T) {
	for state, want := range map[string]bool{
		SessionActive:      true,
		SessionPendingExit: true,
		SessionClosed:      false,
	} {
		s := TrackingSession{State: state}
		if s.Open() != want {
			t.Errorf("Open() for %q = %v, want %v", state, s.Open(), want)
		}
	}
}
