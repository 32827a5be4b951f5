package report

import (
	"sort"
	"time"

	"shiftclock/internal/models"
)

// Source values for a day's tracked hours.
const (
	SourceGeofence = "geofence"
	SourceManual   = "manual"
	SourceMixed    = "mixed"
)

// DailyActual is one day's confirmed tracked hours, the raw material the
// downstream aggregation pipeline consumes. This package only derives the
// per-day totals; any privacy noising happens elsewhere.
type DailyActual struct {
	Date        time.Time // midnight, local time
	ActualHours float64
	Sessions    int
	Source      string
}

// BuildDailyActuals groups closed sessions by the local calendar day of
// their clock-in and sums durations. Open sessions are skipped; they have
// no confirmed duration yet.
func BuildDailyActuals(sessions []models.TrackingSession) []DailyActual {
	type dayAgg struct {
		minutes  int
		sessions int
		auto     bool
		manual   bool
	}

	days := make(map[time.Time]*dayAgg)
	for _, s := range sessions {
		if s.State != models.SessionClosed || s.DurationMinutes == nil {
			continue
		}
		day := truncateToDay(s.ClockIn)
		agg, ok := days[day]
		if !ok {
			agg = &dayAgg{}
			days[day] = agg
		}
		agg.minutes += *s.DurationMinutes
		agg.sessions++
		switch s.TrackingMethod {
		case models.MethodGeofenceAuto:
			agg.auto = true
		case models.MethodManual:
			agg.manual = true
		}
	}

	actuals := make([]DailyActual, 0, len(days))
	for day, agg := range days {
		actuals = append(actuals, DailyActual{
			Date:        day,
			ActualHours: float64(agg.minutes) / 60,
			Sessions:    agg.sessions,
			Source:      sourceFor(agg.auto, agg.manual),
		})
	}

	sort.Slice(actuals, func(i, j int) bool {
		return actuals[i].Date.Before(actuals[j].Date)
	})
	return actuals
}

func sourceFor(auto, manual bool) string {
	switch {
	case auto && manual:
		return SourceMixed
	case manual:
		return SourceManual
	default:
		return SourceGeofence
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
