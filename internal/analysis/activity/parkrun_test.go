package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/spatial"
)

func newParkrunForTest(t *testing.T) *ParkrunAnalyzer {
	t.Helper()
	a, err := NewParkrunAnalyzer(testAnalysisConfig(), testLocationAnalyzer())
	require.NoError(t, err)
	return a
}

// A ~5 km run from the venue on a Saturday at 09:00 is the canonical parkrun.
func parkrunTrace(start time.Time, lat, lon float64) []models.LocationPoint {
	endLat, endLon := spatial.DestinationPoint(lat, lon, 90, 5000)
	return newTrace(start, lat, lon).moveTo(endLat, endLon, 3.5).points
}

func TestParkrunSaturdayAtVenue(t *testing.T) {
	a := newParkrunForTest(t)
	points := parkrunTrace(saturday.Add(9*time.Hour), tVenue.Latitude, tVenue.Longitude)

	sessions, err := a.DetectSessions(points, "2024-01-06")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, models.ActivityParkrun, s.ActivityType)
	assert.Equal(t, models.ConfidenceHigh, s.ConfidenceLabel)
	assert.InDelta(t, 1.0, s.Confidence, 0.01)
	assert.Equal(t, "Bushy parkrun", s.LocationName)
	assert.InDelta(t, 5000, s.Details["distance_m"], 100)
	assert.InDelta(t, 5000.0/3.5/3600, s.DurationH, 0.01)
}

// The same run away from any registered venue loses the dominant proximity
// factor and drops to MEDIUM.
func TestParkrunAwayFromVenue(t *testing.T) {
	a := newParkrunForTest(t)
	points := parkrunTrace(saturday.Add(9*time.Hour), tHome.Latitude, tHome.Longitude)

	sessions, err := a.DetectSessions(points, "2024-01-06")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	assert.Equal(t, models.ConfidenceMedium, sessions[0].ConfidenceLabel)
	assert.InDelta(t, 0.6, sessions[0].Confidence, 0.01)
	assert.Empty(t, sessions[0].LocationName)
}

// A weekday evening run at the venue keeps proximity but loses the Saturday
// morning factor.
func TestParkrunWrongDay(t *testing.T) {
	a := newParkrunForTest(t)
	points := parkrunTrace(tuesday.Add(18*time.Hour), tVenue.Latitude, tVenue.Longitude)

	sessions, err := a.DetectSessions(points, "2024-01-09")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.InDelta(t, 0.8, sessions[0].Confidence, 0.01)
}

func TestParkrunTooShort(t *testing.T) {
	a := newParkrunForTest(t)
	endLat, endLon := spatial.DestinationPoint(tVenue.Latitude, tVenue.Longitude, 90, 1500)
	points := newTrace(saturday.Add(9*time.Hour), tVenue.Latitude, tVenue.Longitude).
		moveTo(endLat, endLon, 3.5).points

	sessions, err := a.DetectSessions(points, "2024-01-06")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestParkrunNoPoints(t *testing.T) {
	a := newParkrunForTest(t)
	sessions, err := a.DetectSessions(nil, "2024-01-06")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
