package store

import (
	"errors"
	"testing"
	"time"

	"shiftclock/internal/models"
)

func TestCreateLocationValidation(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		name string
		req  CreateLocationRequest
		ok   bool
	}{
		{"valid", CreateLocationRequest{Name: "Clinic", Latitude: 52.52, Longitude: 13.405, RadiusMeters: 100}, true},
		{"empty name", CreateLocationRequest{Name: "  ", Latitude: 52.52, Longitude: 13.405, RadiusMeters: 100}, false},
		{"latitude out of range", CreateLocationRequest{Name: "Clinic", Latitude: 91, Longitude: 13.405, RadiusMeters: 100}, false},
		{"longitude out of range", CreateLocationRequest{Name: "Clinic", Latitude: 52.52, Longitude: -200, RadiusMeters: 100}, false},
		{"radius too small", CreateLocationRequest{Name: "Clinic", Latitude: 52.52, Longitude: 13.405, RadiusMeters: 10}, false},
		{"radius too large", CreateLocationRequest{Name: "Clinic", Latitude: 52.52, Longitude: 13.405, RadiusMeters: 10000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateLocation(tt.req)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestCreateLocationDuplicateID(t *testing.T) {
	s := openTestStore(t)

	req := CreateLocationRequest{
		ID:           "fixed-id",
		Name:         "Clinic",
		Latitude:     52.52,
		Longitude:    13.405,
		RadiusMeters: 100,
	}
	if _, err := s.CreateLocation(req); err != nil {
		t.Fatalf("first CreateLocation: %v", err)
	}
	_, err := s.CreateLocation(req)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestDeleteLocationKeepsSessions(t *testing.T) {
	s := openTestStore(t)
	loc := mustCreateLocation(t, s, "Hospital")

	session, err := s.ClockIn(loc.ID, time.Now(), models.MethodManual)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if _, err := s.ClockOut(session.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("ClockOut: %v", err)
	}

	if err := s.DeleteLocation(loc.ID); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}

	if _, err := s.GetLocation(loc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLocation after delete = %v, want ErrNotFound", err)
	}

	history, err := s.SessionHistory(loc.ID, 10)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("session history should survive location deletion, len = %d", len(history))
	}
}

func TestDeleteLocationNotFound(t *testing.T) {
	s := openTestStore(t)

	if err := s.DeleteLocation("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListLocationsActiveFilter(t *testing.T) {
	s := openTestStore(t)
	a := mustCreateLocation(t, s, "Alpha")
	mustCreateLocation(t, s, "Beta")

	if _, err := s.SetLocationActive(a.ID, false); err != nil {
		t.Fatalf("SetLocationActive: %v", err)
	}

	all, err := s.ListLocations(false)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all locations len = %d, want 2", len(all))
	}

	active, err := s.ListLocations(true)
	if err != nil {
		t.Fatalf("ListLocations(active): %v", err)
	}
	if len(active) != 1 || active[0].Name != "Beta" {
		t.Errorf("active filter returned %+v", active)
	}
}
