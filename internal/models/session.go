package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session states
const (
	SessionActive      = "active"
	SessionPendingExit = "pending_exit"
	SessionClosed      = "closed"
)

// Tracking methods
const (
	MethodGeofenceAuto = "geofence_auto"
	MethodManual       = "manual"
)

// TrackingSession represents one work interval at one location
type TrackingSession struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LocationID      string     `gorm:"not null;index" json:"location_id"`
	ClockIn         time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut        *time.Time `json:"clock_out"`
	DurationMinutes *int       `json:"duration_minutes"` // computed at close
	TrackingMethod  string     `gorm:"not null" json:"tracking_method"`
	State           string     `gorm:"not null;index" json:"state"`
	PendingExitAt   *time.Time `json:"pending_exit_at"` // set only in pending_exit
}

// BeforeCreate assigns a fresh UUID when none was provided
func (s *TrackingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Open reports whether the session is still counting time
func (s *TrackingSession) Open() bool {
	return s.State == SessionActive || s.State == SessionPendingExit
}

// DurationBetween computes the rounded minute difference stored in
// DurationMinutes when a session closes.
func DurationBetween(clockIn, clockOut time.Time) int {
	return int(clockOut.Sub(clockIn).Round(time.Minute) / time.Minute)
}
