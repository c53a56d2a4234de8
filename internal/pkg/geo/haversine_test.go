package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-6.2088, 106.8456},
		{90, 0},
		{-90, 180},
	}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	cases := [][4]float64{
		{-6.2088, 106.8456, -6.1751, 106.8650}, // Jakarta
		{51.5074, -0.1278, 48.8566, 2.3522},    // London-Paris
		{0, 0, 0, 180},
	}
	for _, c := range cases {
		ab := Distance(c[0], c[1], c[2], c[3])
		ba := Distance(c[2], c[3], c[0], c[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Monas to Bundaran HI, roughly 2.4km.
	d := Distance(-6.1754, 106.8272, -6.1950, 106.8233)
	if d < 2100 || d > 2700 {
		t.Errorf("Distance = %v m, want roughly 2400 m", d)
	}

	// One degree of latitude at the equator is about 111.19 km.
	d = Distance(0, 0, 1, 0)
	if math.Abs(d-111195) > 200 {
		t.Errorf("one degree latitude = %v m, want about 111195 m", d)
	}
}
