package models

import (
	"math"
	"testing"
)

func ptr(f float64) *float64 { return &f }

// TestHaversineKnownDistance checks the distance between two well-known
// points (Berlin and Hamburg city centers, ~255 km apart).
func TestHaversineKnownDistance(t *testing.T) {
	d := HaversineM(52.52, 13.405, 53.5511, 9.9937)
	if math.Abs(d-255000) > 5000 {
		t.Errorf("Berlin-Hamburg distance = %.0f m, want ~255000", d)
	}
}

func TestNearestLocationWithinRadius(t *testing.T) {
	locs := []Location{
		{ID: "a", Name: "Home Gym", Latitude: ptr(52.5200), Longitude: ptr(13.4050), RadiusM: 200},
		{ID: "b", Name: "Work Gym", Latitude: ptr(52.5201), Longitude: ptr(13.4051), RadiusM: 500},
	}

	// A point a few meters from both: the closer one wins.
	got := NearestLocation(locs, 52.52005, 13.40502)
	if got == nil || got.ID != "a" {
		t.Fatalf("NearestLocation = %+v, want location a", got)
	}
}

func TestNearestLocationOutsideRadius(t *testing.T) {
	locs := []Location{
		{ID: "a", Name: "Home Gym", Latitude: ptr(52.5200), Longitude: ptr(13.4050), RadiusM: 100},
	}
	// ~10 km away.
	if got := NearestLocation(locs, 52.61, 13.405); got != nil {
		t.Errorf("NearestLocation = %+v, want nil (outside radius)", got)
	}
}

func TestNearestLocationSkipsMissingCoordinates(t *testing.T) {
	locs := []Location{
		{ID: "a", Name: "Manual Only"},
		{ID: "b", Name: "Here", Latitude: ptr(10.0), Longitude: ptr(10.0), RadiusM: 50},
	}
	got := NearestLocation(locs, 10.0, 10.0)
	if got == nil || got.ID != "b" {
		t.Fatalf("NearestLocation = %+v, want location b", got)
	}
}

func TestSessionStatusDerivation(t *testing.T) {
	s := &WorkoutSession{Date: "2025-01-03"}
	if s.Status() != StatusInProgress {
		t.Errorf("fresh session status = %q, want in_progress", s.Status())
	}

	now := s.StartedAt.Add(1)
	s.CompletedAt = &now
	if s.Status() != StatusCompleted {
		t.Errorf("completed session status = %q, want completed", s.Status())
	}

	s.CancelledAt = &now
	if s.Status() != StatusCancelled {
		t.Errorf("cancelled session status = %q, want cancelled", s.Status())
	}
}

func TestSetEntryVolume(t *testing.T) {
	e := SetEntry{Weight: 102.5, Reps: 8}
	if got := e.Volume(); got != 820 {
		t.Errorf("volume = %v, want 820", got)
	}
}
