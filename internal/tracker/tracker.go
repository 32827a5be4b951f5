package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"shiftclock/internal/geofence"
	"shiftclock/internal/models"
	"shiftclock/internal/notify"
	"shiftclock/internal/store"
)

var (
	// ErrAlreadyClockedIn is returned when a manual clock-in targets a
	// location that already has an open session.
	ErrAlreadyClockedIn = errors.New("already clocked in at this location")

	// ErrNoActiveSession is returned when a manual clock-out targets a
	// location with no open session.
	ErrNoActiveSession = errors.New("no active session for this location")
)

// Ignore reasons recorded in the audit log.
const (
	reasonAlreadyActive = "already active"
	reasonNotClockedIn  = "not clocked in"
	reasonDuplicateExit = "duplicate exit"
)

// Tracker reconciles geofence events, manual actions, and grace-period
// expirations into a consistent session history. All entry points for the
// same location are serialized by a per-location lock; locations are
// independent of each other.
type Tracker struct {
	store    *store.Store
	notifier notify.Notifier
	logger   *zap.Logger

	now            func() time.Time
	grace          time.Duration
	shortThreshold time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Options tunes the hysteresis window and the short-session flag.
type Options struct {
	GracePeriod           time.Duration
	ShortSessionThreshold time.Duration
	Now                   func() time.Time // defaults to time.Now
}

func New(s *store.Store, notifier notify.Notifier, logger *zap.Logger, opts Options) *Tracker {
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = 5 * time.Minute
	}
	if opts.ShortSessionThreshold <= 0 {
		opts.ShortSessionThreshold = 5 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tracker{
		store:          s,
		notifier:       notifier,
		logger:         logger,
		now:            opts.Now,
		grace:          opts.GracePeriod,
		shortThreshold: opts.ShortSessionThreshold,
		locks:          make(map[string]*sync.Mutex),
	}
}

// HandleEvent routes a normalized adapter event to the matching handler.
// Wired as the adapter's sink.
func (t *Tracker) HandleEvent(event geofence.Event) {
	var err error
	switch event.Type {
	case models.EventEnter:
		err = t.HandleEnter(event)
	case models.EventExit:
		err = t.HandleExit(event)
	default:
		t.logger.Warn("unknown event type", zap.String("type", event.Type))
		return
	}
	if err != nil {
		// Sensor-event anomalies are never surfaced to the user.
		t.logger.Error("event handling failed",
			zap.String("location_id", event.LocationID),
			zap.String("type", event.Type),
			zap.Error(err))
	}
}

// HandleEnter processes an enter event from the geofence adapter.
func (t *Tracker) HandleEnter(event geofence.Event) error {
	lock := t.lockFor(event.LocationID)
	lock.Lock()
	defer lock.Unlock()

	var notes []notify.Notification
	err := t.store.Transact(func(tx *store.Store) error {
		session, err := tx.ActiveSession(event.LocationID)
		if err != nil {
			return err
		}
		session, err = t.finalizeIfDue(tx, session, &notes)
		if err != nil {
			return err
		}

		switch {
		case session == nil:
			created, err := tx.ClockIn(event.LocationID, event.Timestamp, models.MethodGeofenceAuto)
			if err != nil {
				return err
			}
			if err := tx.LogEvent(auditRow(event, "")); err != nil {
				return err
			}
			notes = append(notes, notify.Notification{
				Title: "Clocked In",
				Body:  fmt.Sprintf("Started tracking time at %s", t.locationName(tx, event.LocationID)),
				Data:  sessionData(created),
			})
			t.logger.Info("clocked in",
				zap.String("location_id", event.LocationID),
				zap.String("session_id", created.ID),
				zap.String("method", models.MethodGeofenceAuto))

		case session.State == models.SessionPendingExit:
			// Re-entry inside the grace window cancels the impending
			// clock-out. Treated as continuation, not a new clock-in.
			if _, err := tx.ClearPendingExit(session.ID); err != nil {
				return err
			}
			if err := tx.LogEvent(auditRow(event, "")); err != nil {
				return err
			}
			t.logger.Info("re-entry cancelled pending exit",
				zap.String("location_id", event.LocationID),
				zap.String("session_id", session.ID))

		default:
			// Enter while already active is expected sensor chatter
			// near the boundary.
			if err := tx.LogEvent(auditRow(event, reasonAlreadyActive)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.dispatch(notes)
	return nil
}

// HandleExit processes an exit event from the geofence adapter.
func (t *Tracker) HandleExit(event geofence.Event) error {
	lock := t.lockFor(event.LocationID)
	lock.Lock()
	defer lock.Unlock()

	var notes []notify.Notification
	err := t.store.Transact(func(tx *store.Store) error {
		session, err := tx.ActiveSession(event.LocationID)
		if err != nil {
			return err
		}
		session, err = t.finalizeIfDue(tx, session, &notes)
		if err != nil {
			return err
		}

		switch {
		case session == nil:
			if err := tx.LogEvent(auditRow(event, reasonNotClockedIn)); err != nil {
				return err
			}

		case session.State == models.SessionActive:
			if _, err := tx.MarkPendingExit(session.ID, event.Timestamp); err != nil {
				return err
			}
			if err := tx.LogEvent(auditRow(event, "")); err != nil {
				return err
			}
			notes = append(notes, notify.Notification{
				Title: "Leaving work area",
				Body: fmt.Sprintf("You'll be clocked out in %d minutes unless you return to %s.",
					int(t.grace.Minutes()), t.locationName(tx, event.LocationID)),
				Data: sessionData(session),
			})
			t.logger.Info("pending exit",
				zap.String("location_id", event.LocationID),
				zap.String("session_id", session.ID),
				zap.Time("pending_exit_at", event.Timestamp))

		default:
			// Duplicate exit does not reset the grace-period clock.
			if err := tx.LogEvent(auditRow(event, reasonDuplicateExit)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.dispatch(notes)
	return nil
}

// ClockIn starts a session by direct user action, bypassing the sensor.
func (t *Tracker) ClockIn(locationID string) (*models.TrackingSession, error) {
	lock := t.lockFor(locationID)
	lock.Lock()
	defer lock.Unlock()

	var created *models.TrackingSession
	var notes []notify.Notification
	err := t.store.Transact(func(tx *store.Store) error {
		session, err := tx.ActiveSession(locationID)
		if err != nil {
			return err
		}
		session, err = t.finalizeIfDue(tx, session, &notes)
		if err != nil {
			return err
		}
		if session != nil {
			return ErrAlreadyClockedIn
		}

		created, err = tx.ClockIn(locationID, t.now(), models.MethodManual)
		if err != nil {
			return err
		}
		notes = append(notes, notify.Notification{
			Title: "Clocked In (Manually)",
			Body:  fmt.Sprintf("Started tracking time at %s", t.locationName(tx, locationID)),
			Data:  sessionData(created),
		})
		t.logger.Info("clocked in",
			zap.String("location_id", locationID),
			zap.String("session_id", created.ID),
			zap.String("method", models.MethodManual))
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.dispatch(notes)
	return created, nil
}

// ClockOut closes the open session by direct user action. Manual action is
// authoritative: it finalizes immediately at now() with no grace period,
// whether the session is active or pending exit.
func (t *Tracker) ClockOut(locationID string) (*models.TrackingSession, error) {
	lock := t.lockFor(locationID)
	lock.Lock()
	defer lock.Unlock()

	var closed *models.TrackingSession
	var notes []notify.Notification
	err := t.store.Transact(func(tx *store.Store) error {
		session, err := tx.ActiveSession(locationID)
		if err != nil {
			return err
		}
		session, err = t.finalizeIfDue(tx, session, &notes)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNoActiveSession
		}

		closed, err = tx.ClockOut(session.ID, t.now())
		if err != nil {
			return err
		}
		notes = append(notes, t.closedNotification(tx, closed))
		t.logger.Info("clocked out",
			zap.String("location_id", locationID),
			zap.String("session_id", closed.ID),
			zap.Intp("duration_minutes", closed.DurationMinutes))
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.dispatch(notes)
	return closed, nil
}

// ActiveSession returns the open session for a location, first applying the
// opportunistic grace-period check. Returns nil when nothing is open.
func (t *Tracker) ActiveSession(locationID string) (*models.TrackingSession, error) {
	lock := t.lockFor(locationID)
	lock.Lock()
	defer lock.Unlock()

	var session *models.TrackingSession
	var notes []notify.Notification
	err := t.store.Transact(func(tx *store.Store) error {
		found, err := tx.ActiveSession(locationID)
		if err != nil {
			return err
		}
		session, err = t.finalizeIfDue(tx, found, &notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.dispatch(notes)
	return session, nil
}

// History returns the session history for a location, most recent first.
func (t *Tracker) History(locationID string, limit int) ([]models.TrackingSession, error) {
	return t.store.SessionHistory(locationID, limit)
}

// FinalizeDue closes every pending-exit session whose grace period has
// elapsed. Called by the background sweeper; returns the number closed.
func (t *Tracker) FinalizeDue() (int, error) {
	open, err := t.store.OpenSessions()
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, s := range open {
		if s.State != models.SessionPendingExit {
			continue
		}
		lock := t.lockFor(s.LocationID)
		lock.Lock()

		var notes []notify.Notification
		err := t.store.Transact(func(tx *store.Store) error {
			// Re-read under the lock; a re-entry or manual action may
			// have raced the sweep.
			current, err := tx.ActiveSession(s.LocationID)
			if err != nil {
				return err
			}
			remaining, err := t.finalizeIfDue(tx, current, &notes)
			if err != nil {
				return err
			}
			if remaining == nil && current != nil {
				finalized++
			}
			return nil
		})
		lock.Unlock()
		if err != nil {
			return finalized, err
		}
		t.dispatch(notes)
	}

	return finalized, nil
}

// finalizeIfDue closes a pending-exit session whose grace period has
// elapsed, queuing the clock-out notification. Clock-out time is the moment
// of departure (PendingExitAt), not the moment of finalization. Returns the
// session still open, or nil once closed.
func (t *Tracker) finalizeIfDue(tx *store.Store, session *models.TrackingSession, notes *[]notify.Notification) (*models.TrackingSession, error) {
	if session == nil || session.State != models.SessionPendingExit || session.PendingExitAt == nil {
		return session, nil
	}
	if t.now().Sub(*session.PendingExitAt) < t.grace {
		return session, nil
	}

	closed, err := tx.ClockOut(session.ID, *session.PendingExitAt)
	if err != nil {
		return nil, err
	}
	*notes = append(*notes, t.closedNotification(tx, closed))
	t.logger.Info("grace period elapsed, session finalized",
		zap.String("location_id", closed.LocationID),
		zap.String("session_id", closed.ID),
		zap.Intp("duration_minutes", closed.DurationMinutes))
	return nil, nil
}

// closedNotification builds the clock-out notification, flagging sessions
// under the short-session threshold as possibly spurious.
func (t *Tracker) closedNotification(tx *store.Store, session *models.TrackingSession) notify.Notification {
	title := "Clocked Out"
	minutes := 0
	if session.DurationMinutes != nil {
		minutes = *session.DurationMinutes
	}
	if time.Duration(minutes)*time.Minute < t.shortThreshold {
		title = "Short session recorded"
	}
	return notify.Notification{
		Title: title,
		Body: fmt.Sprintf("Tracked %s at %s",
			formatMinutes(minutes), t.locationName(tx, session.LocationID)),
		Data: sessionData(session),
	}
}

// dispatch delivers notifications fire-and-forget. Delivery failure is
// logged and never affects the committed transition.
func (t *Tracker) dispatch(notes []notify.Notification) {
	for _, n := range notes {
		go func(n notify.Notification) {
			if err := t.notifier.Send(n); err != nil {
				t.logger.Warn("notification delivery failed",
					zap.String("title", n.Title),
					zap.Error(err))
			}
		}(n)
	}
}

func (t *Tracker) lockFor(locationID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[locationID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[locationID] = lock
	}
	return lock
}

func (t *Tracker) locationName(tx *store.Store, locationID string) string {
	loc, err := tx.GetLocation(locationID)
	if err != nil {
		return locationID
	}
	return loc.Name
}

func auditRow(event geofence.Event, ignoreReason string) *models.GeofenceEvent {
	return &models.GeofenceEvent{
		LocationID:   event.LocationID,
		EventType:    event.Type,
		Timestamp:    event.Timestamp,
		Latitude:     event.Latitude,
		Longitude:    event.Longitude,
		Accuracy:     event.Accuracy,
		Ignored:      ignoreReason != "",
		IgnoreReason: ignoreReason,
	}
}

func sessionData(session *models.TrackingSession) map[string]string {
	return map[string]string{
		"location_id": session.LocationID,
		"session_id":  session.ID,
	}
}

func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
