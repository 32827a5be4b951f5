package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shiftclock/internal/models"
)

// Transact runs fn against a store bound to a single database transaction.
// The tracker uses this to make its lookup-decide-write sequence atomic.
func (s *Store) Transact(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txStore := *s
		txStore.db = tx
		return fn(&txStore)
	})
}

// ClockIn creates a new active tracking session for a location
func (s *Store) ClockIn(locationID string, at time.Time, method string) (*models.TrackingSession, error) {
	// FK check by lookup so the caller gets a typed not-found error
	// instead of a raw constraint failure.
	if _, err := s.GetLocation(locationID); err != nil {
		return nil, err
	}

	var open int64
	if err := s.db.Model(&models.TrackingSession{}).
		Where("location_id = ? AND state IN ?", locationID,
			[]string{models.SessionActive, models.SessionPendingExit}).
		Count(&open).Error; err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, fmt.Errorf("open session exists for location %q: %w", locationID, ErrDuplicate)
	}

	session := models.TrackingSession{
		LocationID:     locationID,
		ClockIn:        at,
		TrackingMethod: method,
		State:          models.SessionActive,
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ClockOut closes a session, computing its rounded duration in minutes
func (s *Store) ClockOut(sessionID string, at time.Time) (*models.TrackingSession, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	minutes := models.DurationBetween(session.ClockIn, at)
	session.ClockOut = &at
	session.DurationMinutes = &minutes
	session.State = models.SessionClosed
	session.PendingExitAt = nil

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}

	return session, nil
}

// MarkPendingExit moves an active session into the hysteresis window
func (s *Store) MarkPendingExit(sessionID string, at time.Time) (*models.TrackingSession, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.State = models.SessionPendingExit
	session.PendingExitAt = &at

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}

	return session, nil
}

// ClearPendingExit cancels the hysteresis window, returning the session to active
func (s *Store) ClearPendingExit(sessionID string) (*models.TrackingSession, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.State = models.SessionActive
	session.PendingExitAt = nil

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}

	return session, nil
}

// ActiveSession returns the single open (active or pending_exit) session for
// a location, or nil when the location has no open session.
func (s *Store) ActiveSession(locationID string) (*models.TrackingSession, error) {
	var session models.TrackingSession

	err := s.db.
		Where("location_id = ? AND state IN ?", locationID,
			[]string{models.SessionActive, models.SessionPendingExit}).
		Order("clock_in DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // no open session is not an error
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// OpenSessions returns every open session across all locations. The sweeper
// uses this to find sessions whose grace period may have elapsed.
func (s *Store) OpenSessions() ([]models.TrackingSession, error) {
	var sessions []models.TrackingSession

	err := s.db.
		Where("state IN ?", []string{models.SessionActive, models.SessionPendingExit}).
		Order("clock_in ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// SessionHistory returns open and closed sessions for a location, most
// recent first.
func (s *Store) SessionHistory(locationID string, limit int) ([]models.TrackingSession, error) {
	var sessions []models.TrackingSession

	query := s.db.
		Where("location_id = ?", locationID).
		Order("clock_in DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// SessionsInRange returns closed sessions whose clock-in falls in
// [from, to], oldest first. Raw material for daily actual-hours reports.
func (s *Store) SessionsInRange(from, to time.Time) ([]models.TrackingSession, error) {
	var sessions []models.TrackingSession

	err := s.db.
		Where("clock_in >= ? AND clock_in <= ? AND state = ?", from, to, models.SessionClosed).
		Order("clock_in ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// LogEvent appends a geofence event to the audit log
func (s *Store) LogEvent(event *models.GeofenceEvent) error {
	return s.db.Create(event).Error
}

// EventLog returns audit events for a location, most recent first
func (s *Store) EventLog(locationID string, limit int) ([]models.GeofenceEvent, error) {
	var events []models.GeofenceEvent

	query := s.db.
		Where("location_id = ?", locationID).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *Store) getSession(sessionID string) (*models.TrackingSession, error) {
	var session models.TrackingSession
	err := s.db.First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
