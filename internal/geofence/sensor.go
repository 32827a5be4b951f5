package geofence

import (
	"errors"
	"sync"
)

var (
	// ErrPermissionDenied means the platform refused location access.
	// Registration is not retried; granting permission is a user action.
	ErrPermissionDenied = errors.New("location permission not granted")

	// ErrSensorUnavailable means the platform sensor cannot monitor
	// regions at all (no hardware, disabled services).
	ErrSensorUnavailable = errors.New("geofence sensor unavailable")
)

// Region is a circular geofence handed to the platform sensor.
type Region struct {
	ID           string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// RawEvent is the untyped payload the platform delivers to the background
// callback. Kind uses the platform's enum values.
type RawEvent struct {
	RegionID  string
	Kind      RawEventKind
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
}

// RawEventKind mirrors the platform's enter/exit enum.
type RawEventKind int

const (
	RawEventUnknown RawEventKind = iota
	RawEventEnter
	RawEventExit
)

// Sensor abstracts the platform region-monitoring API. The platform offers
// no incremental update: StartMonitoring always replaces the full set.
type Sensor interface {
	StartMonitoring(regions []Region) error
	StopMonitoring() error
	Monitoring() bool
}

// SimulatedSensor is an in-process Sensor used by tests and by the CLI's
// simulate command. Deliver feeds a raw event into the installed callback.
type SimulatedSensor struct {
	mu       sync.Mutex
	regions  []Region
	active   bool
	callback func(RawEvent)

	// Fail-injection knobs for tests.
	StartErr error
	StopErr  error
}

func NewSimulatedSensor() *SimulatedSensor {
	return &SimulatedSensor{}
}

func (s *SimulatedSensor) StartMonitoring(regions []Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StartErr != nil {
		return s.StartErr
	}
	s.regions = append([]Region(nil), regions...)
	s.active = true
	return nil
}

func (s *SimulatedSensor) StopMonitoring() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StopErr != nil {
		return s.StopErr
	}
	s.regions = nil
	s.active = false
	return nil
}

func (s *SimulatedSensor) Monitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Regions returns a copy of the monitored set.
func (s *SimulatedSensor) Regions() []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Region(nil), s.regions...)
}

// SetCallback installs the background callback the adapter registers.
func (s *SimulatedSensor) SetCallback(cb func(RawEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

// Deliver invokes the installed callback with a raw event, imitating a
// delayed platform delivery.
func (s *SimulatedSensor) Deliver(event RawEvent) {
	s.mu.Lock()
	cb := s.callback
	s.mu.Unlock()
	if cb != nil {
		cb(event)
	}
}
