package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"shiftclock/internal/models"
)

// CreateLocationRequest holds the data needed to create a new work location
type CreateLocationRequest struct {
	ID           string // optional; generated when empty
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// CreateLocation creates a new work location after validating its bounds
func (s *Store) CreateLocation(req CreateLocationRequest) (*models.UserLocation, error) {
	location := models.UserLocation{
		ID:           req.ID,
		Name:         strings.TrimSpace(req.Name),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	}

	if err := s.validateLocation(&location); err != nil {
		return nil, err
	}

	if req.ID != "" {
		var existing models.UserLocation
		if err := s.db.First(&existing, "id = ?", req.ID).Error; err == nil {
			return nil, fmt.Errorf("location %q: %w", req.ID, ErrDuplicate)
		}
	}

	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

// UpdateLocation replaces the editable fields of an existing location
func (s *Store) UpdateLocation(id string, req CreateLocationRequest) (*models.UserLocation, error) {
	location, err := s.GetLocation(id)
	if err != nil {
		return nil, err
	}

	location.Name = strings.TrimSpace(req.Name)
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.RadiusMeters = req.RadiusMeters

	if err := s.validateLocation(location); err != nil {
		return nil, err
	}

	if err := s.db.Save(location).Error; err != nil {
		return nil, err
	}

	return location, nil
}

// SetLocationActive toggles the tracking flag without touching geometry
func (s *Store) SetLocationActive(id string, active bool) (*models.UserLocation, error) {
	location, err := s.GetLocation(id)
	if err != nil {
		return nil, err
	}

	location.IsActive = active
	if err := s.db.Save(location).Error; err != nil {
		return nil, err
	}

	return location, nil
}

// DeleteLocation removes the location row. Historical sessions keep their
// LocationID and are never cascaded away.
func (s *Store) DeleteLocation(id string) error {
	result := s.db.Delete(&models.UserLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("location %q: %w", id, ErrNotFound)
	}
	return nil
}

// GetLocation retrieves a location by id
func (s *Store) GetLocation(id string) (*models.UserLocation, error) {
	var location models.UserLocation
	err := s.db.First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("location %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// ListLocations returns all locations, optionally restricted to those with
// tracking enabled, ordered by name.
func (s *Store) ListLocations(activeOnly bool) ([]models.UserLocation, error) {
	var locations []models.UserLocation

	query := s.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}

	return locations, nil
}

func (s *Store) validateLocation(location *models.UserLocation) error {
	if err := s.validate.Struct(location); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if location.RadiusMeters < s.minRadiusMeters || location.RadiusMeters > s.maxRadiusMeters {
		return fmt.Errorf("%w: radius must be between %.0fm and %.0fm",
			ErrInvalid, s.minRadiusMeters, s.maxRadiusMeters)
	}
	return nil
}
