package geofence

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftclock/internal/models"
)

// countingSensor wraps SimulatedSensor to count start/stop calls
type countingSensor struct {
	*SimulatedSensor
	mu     sync.Mutex
	starts int
	stops  int
}

func newCountingSensor() *countingSensor {
	return &countingSensor{SimulatedSensor: NewSimulatedSensor()}
}

func (c *countingSensor) StartMonitoring(regions []Region) error {
	c.mu.Lock()
	c.starts++
	c.mu.Unlock()
	return c.SimulatedSensor.StartMonitoring(regions)
}

func (c *countingSensor) StopMonitoring() error {
	c.mu.Lock()
	c.stops++
	c.mu.Unlock()
	return c.SimulatedSensor.StopMonitoring()
}

func testLocation(id, name string) *models.UserLocation {
	return &models.UserLocation{
		ID:           id,
		Name:         name,
		Latitude:     48.1374,
		Longitude:    11.5755,
		RadiusMeters: 150,
	}
}

func TestRegisterReplacesFullRegionSet(t *testing.T) {
	sensor := newCountingSensor()
	adapter := NewAdapter(sensor, func(Event) {}, zap.NewNop())

	if err := adapter.RegisterLocation(testLocation("a", "Alpha")); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if sensor.starts != 1 || sensor.stops != 0 {
		t.Errorf("after first register: starts=%d stops=%d, want 1/0", sensor.starts, sensor.stops)
	}

	// Second registration must stop-all then start-all with both regions.
	if err := adapter.RegisterLocation(testLocation("b", "Beta")); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if sensor.starts != 2 || sensor.stops != 1 {
		t.Errorf("after second register: starts=%d stops=%d, want 2/1", sensor.starts, sensor.stops)
	}
	if got := len(sensor.Regions()); got != 2 {
		t.Errorf("monitored regions = %d, want 2", got)
	}
}

func TestRegisterIsIdempotentPerLocation(t *testing.T) {
	sensor := newCountingSensor()
	adapter := NewAdapter(sensor, func(Event) {}, zap.NewNop())

	loc := testLocation("a", "Alpha")
	if err := adapter.RegisterLocation(loc); err != nil {
		t.Fatalf("register: %v", err)
	}
	loc.RadiusMeters = 300
	if err := adapter.RegisterLocation(loc); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	regions := sensor.Regions()
	if len(regions) != 1 {
		t.Fatalf("monitored regions = %d, want 1", len(regions))
	}
	if regions[0].RadiusMeters != 300 {
		t.Errorf("radius = %.0f, want replaced value 300", regions[0].RadiusMeters)
	}
}

func TestUnregisterStopsWhenEmpty(t *testing.T) {
	sensor := newCountingSensor()
	adapter := NewAdapter(sensor, func(Event) {}, zap.NewNop())

	if err := adapter.RegisterLocation(testLocation("a", "Alpha")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := adapter.UnregisterLocation("a"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if sensor.Monitoring() {
		t.Error("sensor should stop monitoring when no regions remain")
	}

	// Unregistering an unknown id is a no-op.
	if err := adapter.UnregisterLocation("missing"); err != nil {
		t.Errorf("unregister unknown: %v", err)
	}
}

func TestUnregisterKeepsRemainder(t *testing.T) {
	sensor := newCountingSensor()
	adapter := NewAdapter(sensor, func(Event) {}, zap.NewNop())

	adapter.RegisterLocation(testLocation("a", "Alpha"))
	adapter.RegisterLocation(testLocation("b", "Beta"))

	if err := adapter.UnregisterLocation("a"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	regions := sensor.Regions()
	if len(regions) != 1 || regions[0].ID != "b" {
		t.Errorf("remaining regions = %+v, want only b", regions)
	}
	if !sensor.Monitoring() {
		t.Error("sensor should keep monitoring the remainder")
	}
}

func TestRegisterPermissionDeniedFailsFast(t *testing.T) {
	sensor := NewSimulatedSensor()
	sensor.StartErr = ErrPermissionDenied
	adapter := NewAdapter(sensor, func(Event) {}, zap.NewNop())

	err := adapter.RegisterLocation(testLocation("a", "Alpha"))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if len(adapter.MonitoredRegions()) != 0 {
		t.Error("failed registration must not leave the region in the registry")
	}
}

func TestCallbackNormalization(t *testing.T) {
	var got []Event
	sensor := NewSimulatedSensor()
	adapter := NewAdapter(sensor, func(e Event) { got = append(got, e) }, zap.NewNop())
	sensor.SetCallback(adapter.HandleCallback)

	lat, lon, acc := 48.1374, 11.5755, 12.0
	before := time.Now()
	sensor.Deliver(RawEvent{
		RegionID:  "loc-1",
		Kind:      RawEventEnter,
		Latitude:  &lat,
		Longitude: &lon,
		Accuracy:  &acc,
	})
	sensor.Deliver(RawEvent{RegionID: "loc-1", Kind: RawEventExit})
	after := time.Now()

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Type != models.EventEnter || got[1].Type != models.EventExit {
		t.Errorf("types = %q, %q", got[0].Type, got[1].Type)
	}
	if got[0].LocationID != "loc-1" {
		t.Errorf("location id = %q", got[0].LocationID)
	}
	if got[0].Latitude == nil || *got[0].Latitude != lat {
		t.Errorf("latitude = %v, want %v", got[0].Latitude, lat)
	}
	if got[0].Accuracy == nil || *got[0].Accuracy != acc {
		t.Errorf("accuracy = %v, want %v", got[0].Accuracy, acc)
	}
	// Timestamp is stamped at normalization time, not taken from the platform.
	if got[0].Timestamp.Before(before) || got[0].Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", got[0].Timestamp, before, after)
	}
}

func TestCallbackDropsMalformedPayloads(t *testing.T) {
	calls := 0
	sensor := NewSimulatedSensor()
	adapter := NewAdapter(sensor, func(Event) { calls++ }, zap.NewNop())
	sensor.SetCallback(adapter.HandleCallback)

	sensor.Deliver(RawEvent{RegionID: "", Kind: RawEventEnter})
	sensor.Deliver(RawEvent{RegionID: "loc-1", Kind: RawEventUnknown})
	sensor.Deliver(RawEvent{RegionID: "loc-1", Kind: RawEventKind(42)})

	if calls != 0 {
		t.Errorf("sink called %d times for malformed payloads, want 0", calls)
	}
}
