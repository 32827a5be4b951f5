package report

import (
	"testing"
	"time"

	"shiftclock/internal/models"
)

func closedSession(clockIn time.Time, minutes int, method string) models.TrackingSession {
	out := clockIn.Add(time.Duration(minutes) * time.Minute)
	return models.TrackingSession{
		LocationID:      "loc-1",
		ClockIn:         clockIn,
		ClockOut:        &out,
		DurationMinutes: &minutes,
		TrackingMethod:  method,
		State:           models.SessionClosed,
	}
}

func TestBuildDailyActuals(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 7, 0, 0, 0, time.UTC)

	sessions := []models.TrackingSession{
		closedSession(day1, 240, models.MethodGeofenceAuto),
		closedSession(day1.Add(5*time.Hour), 90, models.MethodManual),
		closedSession(day2, 480, models.MethodGeofenceAuto),
	}

	actuals := BuildDailyActuals(sessions)
	if len(actuals) != 2 {
		t.Fatalf("days = %d, want 2", len(actuals))
	}

	first := actuals[0]
	if !first.Date.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day = %v", first.Date)
	}
	if first.ActualHours != 5.5 {
		t.Errorf("first day hours = %v, want 5.5", first.ActualHours)
	}
	if first.Sessions != 2 {
		t.Errorf("first day sessions = %d, want 2", first.Sessions)
	}
	if first.Source != SourceMixed {
		t.Errorf("first day source = %q, want mixed", first.Source)
	}

	second := actuals[1]
	if second.ActualHours != 8 {
		t.Errorf("second day hours = %v, want 8", second.ActualHours)
	}
	if second.Source != SourceGeofence {
		t.Errorf("second day source = %q, want geofence", second.Source)
	}
}

func TestBuildDailyActualsSkipsOpenSessions(t *testing.T) {
	day := time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC)
	open := models.TrackingSession{
		LocationID:     "loc-1",
		ClockIn:        day,
		TrackingMethod: models.MethodGeofenceAuto,
		State:          models.SessionActive,
	}

	actuals := BuildDailyActuals([]models.TrackingSession{open})
	if len(actuals) != 0 {
		t.Errorf("open sessions must not contribute hours, got %+v", actuals)
	}
}

func TestBuildDailyActualsManualOnly(t *testing.T) {
	day := time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC)

	actuals := BuildDailyActuals([]models.TrackingSession{
		closedSession(day, 60, models.MethodManual),
	})
	if len(actuals) != 1 {
		t.Fatalf("days = %d, want 1", len(actuals))
	}
	if actuals[0].Source != SourceManual {
		t.Errorf("source = %q, want manual", actuals[0].Source)
	}
}

func TestBuildDailyActualsEmpty(t *testing.T) {
	if got := BuildDailyActuals(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
