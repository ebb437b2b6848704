package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 51.5, -0.1, 51.5, -0.1, 0, 0.001},
		{"one degree latitude", 0, 0, 1, 0, 111195, 50},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343500, 1500},
		{"short hop", 51.4123, -0.3354, 51.4132, -0.3354, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	d1 := HaversineDistance(51.46, -0.30, 51.51, -0.09)
	d2 := HaversineDistance(51.51, -0.09, 51.46, -0.30)
	assert.InDelta(t, d1, d2, 1e-6)
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"due north", 0, 0, 1, 0, 0, 0.1},
		{"due east", 0, 0, 0, 1, 90, 0.1},
		{"due south", 1, 0, 0, 0, 180, 0.1},
		{"due west", 0, 1, 0, 0, 270, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

// Walking a destination point and measuring back must reproduce the distance;
// the segmenter's velocity math depends on the two staying consistent.
func TestDestinationPointRoundTrip(t *testing.T) {
	for _, dist := range []float64{10, 100, 1000, 25000} {
		for _, bearing := range []float64{0, 45, 90, 210, 359} {
			lat, lon := DestinationPoint(51.4613, -0.3037, bearing, dist)
			got := HaversineDistance(51.4613, -0.3037, lat, lon)
			assert.InDelta(t, dist, got, dist*0.001+0.01, "bearing %v dist %v", bearing, dist)
		}
	}
}

func TestSlopeAngle(t *testing.T) {
	tests := []struct {
		name       string
		altDelta   float64
		horizontal float64
		want       float64
		tolerance  float64
	}{
		{"flat", 0, 100, 0, 0.001},
		{"45 up", 100, 100, 45, 0.001},
		{"45 down", -100, 100, -45, 0.001},
		{"gentle climb", 2, 100, 1.15, 0.01},
		{"zero horizontal", 50, 0, 0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SlopeAngle(tt.altDelta, tt.horizontal), tt.tolerance)
		})
	}
}
