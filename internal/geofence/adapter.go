package geofence

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"shiftclock/internal/models"
)

// Event is the normalized enter/exit event handed to the tracker.
type Event struct {
	LocationID string
	Type       string // models.EventEnter or models.EventExit
	Timestamp  time.Time
	Latitude   *float64
	Longitude  *float64
	Accuracy   *float64
}

// Adapter wraps the platform sensor: it keeps the in-memory registry of
// monitored regions and normalizes raw callbacks into Events for the sink.
// It owns translation only, never business state.
type Adapter struct {
	sensor Sensor
	sink   func(Event)
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	regions map[string]Region
}

func NewAdapter(sensor Sensor, sink func(Event), logger *zap.Logger) *Adapter {
	return &Adapter{
		sensor:  sensor,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
		regions: make(map[string]Region),
	}
}

// RegisterLocation adds or replaces one region and re-issues monitoring for
// the full set. The platform API has no incremental update, so an already
// monitoring sensor is stopped before the replaced set is started.
func (a *Adapter) RegisterLocation(loc *models.UserLocation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.regions[loc.ID] = Region{
		ID:           loc.ID,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
	}

	if err := a.restartMonitoring(); err != nil {
		delete(a.regions, loc.ID)
		return fmt.Errorf("register location %q: %w", loc.ID, err)
	}

	a.logger.Info("geofence registered",
		zap.String("location_id", loc.ID),
		zap.String("name", loc.Name),
		zap.Int("monitored", len(a.regions)))
	return nil
}

// UnregisterLocation removes one region from the registry, restarting
// monitoring with the remainder or stopping entirely when none remain.
func (a *Adapter) UnregisterLocation(locationID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.regions[locationID]; !ok {
		return nil // already unregistered
	}
	delete(a.regions, locationID)

	if len(a.regions) == 0 {
		if a.sensor.Monitoring() {
			if err := a.sensor.StopMonitoring(); err != nil {
				return fmt.Errorf("unregister location %q: %w", locationID, err)
			}
		}
		a.logger.Info("geofence monitoring stopped", zap.String("location_id", locationID))
		return nil
	}

	if err := a.restartMonitoring(); err != nil {
		return fmt.Errorf("unregister location %q: %w", locationID, err)
	}

	a.logger.Info("geofence unregistered",
		zap.String("location_id", locationID),
		zap.Int("monitored", len(a.regions)))
	return nil
}

// MonitoredRegions returns a snapshot of the registry.
func (a *Adapter) MonitoredRegions() []Region {
	a.mu.Lock()
	defer a.mu.Unlock()

	regions := make([]Region, 0, len(a.regions))
	for _, r := range a.regions {
		regions = append(regions, r)
	}
	return regions
}

// HandleCallback is the background callback installed on the platform. It
// normalizes the raw payload and invokes the sink with a fresh timestamp;
// platform delivery can lag the actual boundary crossing, so the delivery
// time is not trusted. Malformed payloads are logged and dropped.
func (a *Adapter) HandleCallback(raw RawEvent) {
	if raw.RegionID == "" {
		a.logger.Warn("geofence callback with empty region id, dropping")
		return
	}

	var eventType string
	switch raw.Kind {
	case RawEventEnter:
		eventType = models.EventEnter
	case RawEventExit:
		eventType = models.EventExit
	default:
		a.logger.Warn("geofence callback with unknown event kind, dropping",
			zap.String("region_id", raw.RegionID),
			zap.Int("kind", int(raw.Kind)))
		return
	}

	a.sink(Event{
		LocationID: raw.RegionID,
		Type:       eventType,
		Timestamp:  a.now(),
		Latitude:   raw.Latitude,
		Longitude:  raw.Longitude,
		Accuracy:   raw.Accuracy,
	})
}

// restartMonitoring stops the sensor if needed and starts it with the
// current full region set. Caller holds a.mu.
func (a *Adapter) restartMonitoring() error {
	if a.sensor.Monitoring() {
		if err := a.sensor.StopMonitoring(); err != nil {
			return err
		}
	}

	regions := make([]Region, 0, len(a.regions))
	for _, r := range a.regions {
		regions = append(regions, r)
	}
	return a.sensor.StartMonitoring(regions)
}
