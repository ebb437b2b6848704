package models

import "time"

// LocationPoint represents a single GPS observation from the location tracker
type LocationPoint struct {
	ID        int64     `json:"id" db:"id"`
	Time      time.Time `json:"time" db:"ts"`
	Latitude  float64   `json:"latitude" db:"lat"`
	Longitude float64   `json:"longitude" db:"lon"`
	Altitude  *float64  `json:"altitude,omitempty" db:"altitude"` // meters, nil when the tracker did not report one
	Accuracy  *float64  `json:"accuracy,omitempty" db:"accuracy"` // meters, nil when unknown
	Source    string    `json:"source,omitempty" db:"source"`     // e.g. "owntracks", "import"
}

// PointsResponse represents a paginated response of location points
type PointsResponse struct {
	Data       []LocationPoint `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}
