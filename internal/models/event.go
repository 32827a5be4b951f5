package models

import "time"

// Event types reported by the geofence sensor
const (
	EventEnter = "enter"
	EventExit  = "exit"
)

// GeofenceEvent is an append-only audit record of every enter/exit the
// adapter reported, plus whether the tracker ignored it and why. Used for
// diagnosing false exits/enters, never for deriving hours.
type GeofenceEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	LocationID   string    `gorm:"not null;index" json:"location_id"`
	EventType    string    `gorm:"not null" json:"event_type"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Accuracy     *float64  `json:"accuracy"`
	Ignored      bool      `gorm:"default:false" json:"ignored"`
	IgnoreReason string    `json:"ignore_reason"`
}
