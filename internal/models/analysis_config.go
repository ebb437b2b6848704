package models

// VelocityBand is a half-open velocity range in m/s used for movement mode
// classification
type VelocityBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the band.
func (b VelocityBand) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// ClockWindow is a clock-time window in "HH:MM" form. Windows where End is
// before Start wrap past midnight (e.g. night 22:00-06:00).
type ClockWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Range is an inclusive numeric range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ActivityConfig holds the tunable thresholds for one activity type
type ActivityConfig struct {
	// VelocityBands maps movement modes to the velocity ranges used when
	// segmenting for this activity
	VelocityBands map[string]VelocityBand `json:"velocity_bands"`

	// Session-level filters
	DurationMinutes Range `json:"duration_minutes"`
	DistanceMeters  Range `json:"distance_meters"`

	// ExpectedDays lists lowercase weekday names the activity is expected
	// on; empty means any day
	ExpectedDays []string `json:"expected_days,omitempty"`

	// Windows maps named clock windows (e.g. "morning", "evening",
	// "saturday_morning") used by the analyzer
	Windows map[string]ClockWindow `json:"windows,omitempty"`

	// GapToleranceMinutes is the maximum gap between velocity segments
	// clustered into one candidate session
	GapToleranceMinutes float64 `json:"gap_tolerance_minutes"`

	// Weights maps confidence factor names to integer weights summing to 100
	Weights map[string]int `json:"weights"`
}

// AnalysisConfig is the full threshold document, keyed by activity type
type AnalysisConfig struct {
	Activities map[string]ActivityConfig `json:"activities"`

	// TimePeriods maps period names (morning/afternoon/evening/night) to
	// clock windows for point filtering
	TimePeriods map[string]ClockWindow `json:"time_periods"`
}
