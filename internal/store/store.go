package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftclock/internal/models"
)

// schemaVersion is bumped whenever the persisted schema changes shape.
const schemaVersion = 1

// schemaMarker records the schema version the database was last migrated to.
type schemaMarker struct {
	ID      uint `gorm:"primarykey"`
	Version int  `gorm:"not null"`
}

func (schemaMarker) TableName() string {
	return "schema_version"
}

// Store owns durable persistence of locations, sessions, and the
// geofence event log.
type Store struct {
	db       *gorm.DB
	validate *validator.Validate

	minRadiusMeters float64
	maxRadiusMeters float64
}

// Options tunes store-level validation bounds.
type Options struct {
	MinRadiusMeters float64
	MaxRadiusMeters float64
}

// DefaultOptions matches the configured defaults.
func DefaultOptions() Options {
	return Options{MinRadiusMeters: 50, MaxRadiusMeters: 500}
}

// Open sets up the database connection at path and runs migrations
func Open(path string, opts Options) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
		// Session history must outlive its location, so no FK constraint
		// is created for the location->sessions relation.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:              db,
		validate:        validator.New(),
		minRadiusMeters: opts.MinRadiusMeters,
		maxRadiusMeters: opts.MaxRadiusMeters,
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate creates/updates the database schema and stamps the version marker
func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(
		&models.UserLocation{},
		&models.TrackingSession{},
		&models.GeofenceEvent{},
		&schemaMarker{},
	); err != nil {
		return err
	}

	marker := schemaMarker{ID: 1, Version: schemaVersion}
	return s.db.Save(&marker).Error
}

// SchemaVersion returns the version stamped into the database.
func (s *Store) SchemaVersion() (int, error) {
	var marker schemaMarker
	if err := s.db.First(&marker, 1).Error; err != nil {
		return 0, err
	}
	return marker.Version, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
