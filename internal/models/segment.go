package models

import "time"

// VelocitySegment represents a contiguous run of GPS point pairs sharing one
// inferred movement mode. Segments are derived per analysis call and never
// persisted.
type VelocitySegment struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	StartLat  float64   `json:"start_lat"`
	StartLon  float64   `json:"start_lon"`
	EndLat    float64   `json:"end_lat"`
	EndLon    float64   `json:"end_lon"`

	// Movement characteristics
	Velocity      float64 `json:"velocity_mps"`    // mean m/s over the segment
	Distance      float64 `json:"distance_meters"` // summed haversine distance
	Duration      float64 `json:"duration_seconds"`
	Mode          string  `json:"mode"`
	SlopeAngle    float64 `json:"slope_angle,omitempty"`    // degrees, positive = ascending
	AltitudeDelta float64 `json:"altitude_delta,omitempty"` // meters, end minus start
	HasSlope      bool    `json:"-"`                        // false when no altitude data was available
}

// Movement mode constants
const (
	ModeStationary = "stationary"
	ModeWalking    = "walking"
	ModeRunning    = "running"
	ModeTrain      = "train"
	ModeLift       = "lift"
	ModeDescent    = "descent"
	ModeUnknown    = "unknown"
)

// Gap returns the time gap between this segment's end and the next one's start.
func (s VelocitySegment) Gap(next VelocitySegment) time.Duration {
	return next.StartTime.Sub(s.EndTime)
}
