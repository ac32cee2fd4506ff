package utils

import "testing"

func TestDistanceMeters(t *testing.T) {
	// Paris Notre-Dame -> Tour Eiffel, environ 4.1 km
	d := DistanceMeters(48.8530, 2.3499, 48.8584, 2.2945)
	if d < 3900 || d > 4300 {
		t.Errorf("Paris distance = %.0f m, want ~4100 m", d)
	}

	// Même point = distance nulle
	if d := DistanceMeters(48.8530, 2.3499, 48.8530, 2.3499); d != 0 {
		t.Errorf("same point distance = %f, want 0", d)
	}
}

func TestWithinRadius(t *testing.T) {
	// Deux points à ~150 m l'un de l'autre
	lat1, lng1 := 48.85300, 2.34990
	lat2, lng2 := 48.85435, 2.34990

	if !WithinRadius(lat1, lng1, lat2, lng2, 500) {
		t.Error("points 150 m apart should be within 500 m")
	}
	if WithinRadius(lat1, lng1, lat2, lng2, 100) {
		t.Error("points 150 m apart should not be within 100 m")
	}
}
