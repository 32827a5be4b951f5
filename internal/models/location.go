package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserLocation is a named geofence the user wants tracked
type UserLocation struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string  `gorm:"not null" json:"name" validate:"required,max=100"`
	Latitude     float64 `gorm:"not null" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `gorm:"not null" json:"longitude" validate:"gte=-180,lte=180"`
	RadiusMeters float64 `gorm:"not null" json:"radius_meters"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	// Relationships. No cascade delete: session history outlives the location.
	Sessions []TrackingSession `gorm:"foreignKey:LocationID" json:"sessions,omitempty"`
}

// BeforeCreate assigns a fresh UUID when none was provided
func (l *UserLocation) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
