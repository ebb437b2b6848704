package models

import "time"

// ActivitySession represents a time-bounded, confidence-scored classification
// of a GPS trace window as a specific real-world activity. Sessions are
// immutable once returned by an analyzer; callers may merge and sort but not
// mutate them.
type ActivitySession struct {
	ID           string    `json:"id" db:"id"` // UUID
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Date         string    `json:"date" db:"date"` // YYYY-MM-DD
	StartTime    time.Time `json:"start_time" db:"start_ts"`
	EndTime      time.Time `json:"end_time" db:"end_ts"`
	DurationH    float64   `json:"duration_hours" db:"duration_hours"`

	// Resolved place, empty when no known location matched
	LocationName string  `json:"location_name,omitempty" db:"location_name"`
	LocationLat  float64 `json:"location_lat,omitempty" db:"location_lat"`
	LocationLon  float64 `json:"location_lon,omitempty" db:"location_lon"`

	// Classification confidence
	Confidence      float64 `json:"confidence" db:"confidence"` // 0~1
	ConfidenceLabel string  `json:"confidence_label" db:"confidence_label"`

	// Activity-specific details (holes, distance, direction, runs, ...)
	Details map[string]interface{} `json:"details,omitempty"`

	// Metadata
	AlgoVersion string    `json:"algo_version,omitempty" db:"algo_version"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Activity type constants
const (
	ActivityGolf         = "golf"
	ActivityParkrun      = "parkrun"
	ActivityCommute      = "commute"
	ActivityDogWalking   = "dog_walking"
	ActivitySnowboarding = "snowboarding"
)

// Confidence label constants
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// SessionsResponse represents a paginated response of activity sessions
type SessionsResponse struct {
	Data       []ActivitySession `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
