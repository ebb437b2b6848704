package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

func sessionBase(t *testing.T) *Base {
	t.Helper()
	cfg := &models.AnalysisConfig{
		Activities: map[string]models.ActivityConfig{
			"parkrun": {
				DurationMinutes:     models.Range{Min: 12, Max: 50},
				ExpectedDays:        []string{"saturday"},
				Windows:             map[string]models.ClockWindow{"saturday_morning": {Start: "08:00", End: "10:30"}},
				GapToleranceMinutes: 5,
				Weights:             map[string]int{"venue_proximity": 100},
			},
		},
	}
	b, err := NewBase("parkrun", cfg, nil)
	require.NoError(t, err)
	return b
}

func testCandidate(start time.Time, d time.Duration) Candidate {
	return Candidate{
		StartTime: start,
		EndTime:   start.Add(d),
		Segments: []models.VelocitySegment{{
			StartTime: start,
			EndTime:   start.Add(d),
			Duration:  d.Seconds(),
		}},
	}
}

func TestNewSession(t *testing.T) {
	b := sessionBase(t)
	start := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	cand := testCandidate(start, 24*time.Minute)
	venue := models.KnownLocation{Name: "Bushy parkrun", Latitude: 51.4123, Longitude: -0.3354}

	s, ok := b.NewSession("2024-01-06", cand, 0.95, &venue, map[string]interface{}{"distance_m": 5000.0})
	require.True(t, ok)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "parkrun", s.ActivityType)
	assert.Equal(t, "2024-01-06", s.Date)
	assert.Equal(t, models.ConfidenceHigh, s.ConfidenceLabel)
	assert.InDelta(t, 0.4, s.DurationH, 0.001)
	assert.Equal(t, "Bushy parkrun", s.LocationName)
	assert.Equal(t, 51.4123, s.LocationLat)
	assert.Equal(t, AlgoVersion, s.AlgoVersion)
}

// Scores at the floor survive; below it the candidate must vanish.
func TestNewSessionFloor(t *testing.T) {
	b := sessionBase(t)
	cand := testCandidate(time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC), 24*time.Minute)

	s, ok := b.NewSession("2024-01-06", cand, 0.4, nil, nil)
	require.True(t, ok)
	assert.Equal(t, models.ConfidenceLow, s.ConfidenceLabel)
	assert.Empty(t, s.LocationName)

	_, ok = b.NewSession("2024-01-06", cand, 0.399999, nil, nil)
	assert.False(t, ok)
}

// IDs are a pure function of activity and time bounds, so re-analysis lands
// on the same rows; a different window gets a different identity.
func TestNewSessionDeterministicID(t *testing.T) {
	b := sessionBase(t)
	start := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	cand := testCandidate(start, 24*time.Minute)

	s1, ok := b.NewSession("2024-01-06", cand, 0.9, nil, nil)
	require.True(t, ok)
	s2, ok := b.NewSession("2024-01-06", cand, 0.9, nil, nil)
	require.True(t, ok)
	assert.Equal(t, s1.ID, s2.ID)

	shifted, ok := b.NewSession("2024-01-06", testCandidate(start.Add(time.Hour), 24*time.Minute), 0.9, nil, nil)
	require.True(t, ok)
	assert.NotEqual(t, s1.ID, shifted.ID)
}

func TestBaseWindowsAndDays(t *testing.T) {
	b := sessionBase(t)
	saturdayMorning := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	saturdayNight := time.Date(2024, 1, 6, 23, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)

	assert.True(t, b.InWindow(saturdayMorning, "saturday_morning"))
	assert.False(t, b.InWindow(saturdayNight, "saturday_morning"))
	assert.False(t, b.InWindow(saturdayMorning, "unconfigured"))

	assert.True(t, b.OnExpectedDay(saturdayMorning))
	assert.False(t, b.OnExpectedDay(tuesday))

	assert.Equal(t, 5*time.Minute, b.GapTolerance())
	assert.True(t, b.DurationOK(24*time.Minute))
	assert.False(t, b.DurationOK(51*time.Minute))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{45, "45s"},
		{300, "5m"},
		{5040, "1h 24m"},
		{7200, "2h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "%v seconds", tt.seconds)
	}
}
