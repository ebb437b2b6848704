package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/spatial"
)

// Fixed test geography: a London home/office pair, a parkrun venue, a golf
// course, and an Alpine resort.
var (
	tHome   = models.KnownLocation{Name: "Home", Category: models.CategoryHome, Latitude: 51.4613, Longitude: -0.3037}
	tOffice = models.KnownLocation{Name: "Office", Category: models.CategoryOffice, Latitude: 51.5134, Longitude: -0.0887}
	tVenue  = models.KnownLocation{Name: "Bushy parkrun", Category: models.CategoryParkrunVenue, Latitude: 51.4123, Longitude: -0.3354}
	tCourse = models.KnownLocation{Name: "Royal Mid-Surrey", Category: models.CategoryGolfCourse, Latitude: 51.4692, Longitude: -0.3043}
	tResort = models.KnownLocation{Name: "Avoriaz", Category: models.CategorySkiResort, Latitude: 46.1917, Longitude: 6.7754}

	// 2024-01-06 is a Saturday, 2024-01-09 a Tuesday
	saturday = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
)

func testLocationAnalyzer() *location.Analyzer {
	reg := &models.KnownLocationRegistry{
		Locations: []models.KnownLocation{tHome, tOffice, tVenue, tCourse, tResort},
	}
	return location.NewAnalyzer(reg, testAnalysisConfig().TimePeriods)
}

func testAnalysisConfig() *models.AnalysisConfig {
	walkRun := map[string]models.VelocityBand{
		models.ModeWalking: {Min: 0.5, Max: 2.5},
		models.ModeRunning: {Min: 2.0, Max: 5.0},
	}

	return &models.AnalysisConfig{
		TimePeriods: map[string]models.ClockWindow{
			"morning":   {Start: "06:00", End: "12:00"},
			"afternoon": {Start: "12:00", End: "17:00"},
			"evening":   {Start: "17:00", End: "22:00"},
			"night":     {Start: "22:00", End: "06:00"},
		},
		Activities: map[string]models.ActivityConfig{
			models.ActivityGolf: {
				VelocityBands:       walkRun,
				DurationMinutes:     models.Range{Min: 90, Max: 360},
				DistanceMeters:      models.Range{Min: 3000, Max: 12000},
				GapToleranceMinutes: 10,
				Weights: map[string]int{
					"course_proximity": 40, "duration_match": 20,
					"distance_match": 20, "walking_share": 20,
				},
			},
			models.ActivityParkrun: {
				VelocityBands:   walkRun,
				DurationMinutes: models.Range{Min: 12, Max: 50},
				DistanceMeters:  models.Range{Min: 4300, Max: 5700},
				ExpectedDays:    []string{"saturday"},
				Windows: map[string]models.ClockWindow{
					"saturday_morning": {Start: "08:00", End: "10:30"},
				},
				GapToleranceMinutes: 5,
				Weights: map[string]int{
					"venue_proximity": 40, "saturday_morning": 20,
					"duration_match": 15, "distance_match": 15, "running_share": 10,
				},
			},
			models.ActivityCommute: {
				VelocityBands: map[string]models.VelocityBand{
					models.ModeWalking: {Min: 0.5, Max: 2.5},
					models.ModeRunning: {Min: 2.0, Max: 5.0},
					models.ModeTrain:   {Min: 10.0, Max: 40.0},
				},
				DurationMinutes: models.Range{Min: 20, Max: 120},
				DistanceMeters:  models.Range{Min: 2000, Max: 80000},
				ExpectedDays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
				Windows: map[string]models.ClockWindow{
					"morning": {Start: "06:00", End: "10:00"},
					"evening": {Start: "16:00", End: "20:00"},
				},
				GapToleranceMinutes: 15,
				Weights: map[string]int{
					"endpoints_proximity": 40, "time_window": 20,
					"weekday_match": 15, "transit_share": 15, "duration_match": 10,
				},
			},
			models.ActivityDogWalking: {
				VelocityBands:       walkRun,
				DurationMinutes:     models.Range{Min: 15, Max: 90},
				DistanceMeters:      models.Range{Min: 800, Max: 6000},
				GapToleranceMinutes: 5,
				Weights: map[string]int{
					"home_proximity": 35, "stationary_pattern": 25,
					"walking_share": 25, "duration_match": 15,
				},
			},
			models.ActivitySnowboarding: {
				VelocityBands: map[string]models.VelocityBand{
					models.ModeWalking: {Min: 0.5, Max: 2.5},
					models.ModeLift:    {Min: 1.5, Max: 6.0},
					models.ModeDescent: {Min: 5.0, Max: 20.0},
				},
				DurationMinutes:     models.Range{Min: 60, Max: 480},
				DistanceMeters:      models.Range{Min: 5000, Max: 120000},
				GapToleranceMinutes: 20,
				Weights: map[string]int{
					"resort_proximity": 35, "runs_count": 25,
					"vertical_meters": 20, "duration_match": 20,
				},
			},
		},
	}
}

func testTripAnalyzer(t *testing.T) *TripAnalyzer {
	t.Helper()
	trip, err := NewTripAnalyzer(testAnalysisConfig(), testLocationAnalyzer())
	require.NoError(t, err)
	return trip
}

// trace builds synthetic GPS sequences by walking positions forward with the
// same spherical math the segmenter measures with, so pair velocities come
// out exactly as scripted.
type trace struct {
	t      time.Time
	lat    float64
	lon    float64
	alt    float64
	hasAlt bool
	step   time.Duration
	points []models.LocationPoint
}

func newTrace(start time.Time, lat, lon float64) *trace {
	tr := &trace{t: start, lat: lat, lon: lon, step: 30 * time.Second}
	tr.record()
	return tr
}

func newAltTrace(start time.Time, lat, lon, alt float64) *trace {
	tr := &trace{t: start, lat: lat, lon: lon, alt: alt, hasAlt: true, step: 30 * time.Second}
	tr.record()
	return tr
}

func (tr *trace) record() {
	p := models.LocationPoint{Time: tr.t, Latitude: tr.lat, Longitude: tr.lon}
	if tr.hasAlt {
		a := tr.alt
		p.Altitude = &a
	}
	tr.points = append(tr.points, p)
}

// stay holds position for d, reporting every step.
func (tr *trace) stay(d time.Duration) *trace {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tr.step {
		tr.t = tr.t.Add(tr.step)
		tr.record()
	}
	return tr
}

// moveTo advances toward (lat, lon) at speed m/s, reporting every step. The
// final report lands exactly on the target.
func (tr *trace) moveTo(lat, lon, speed float64) *trace {
	for {
		remaining := spatial.HaversineDistance(tr.lat, tr.lon, lat, lon)
		if remaining < 0.01 {
			return tr
		}
		stepDist := speed * tr.step.Seconds()
		if stepDist >= remaining {
			dt := time.Duration(remaining / speed * float64(time.Second))
			tr.t = tr.t.Add(dt)
			tr.lat, tr.lon = lat, lon
			tr.record()
			return tr
		}
		bearing := spatial.Bearing(tr.lat, tr.lon, lat, lon)
		tr.lat, tr.lon = spatial.DestinationPoint(tr.lat, tr.lon, bearing, stepDist)
		tr.t = tr.t.Add(tr.step)
		tr.record()
	}
}

// rideTo is moveTo with altitude interpolated linearly over the ground
// distance, for lift and descent traces.
func (tr *trace) rideTo(lat, lon, alt, speed float64) *trace {
	tr.hasAlt = true
	total := spatial.HaversineDistance(tr.lat, tr.lon, lat, lon)
	if total < 0.01 {
		return tr
	}
	altRate := (alt - tr.alt) / total // meters climbed per ground meter
	for {
		remaining := spatial.HaversineDistance(tr.lat, tr.lon, lat, lon)
		if remaining < 0.01 {
			return tr
		}
		stepDist := speed * tr.step.Seconds()
		if stepDist >= remaining {
			dt := time.Duration(remaining / speed * float64(time.Second))
			tr.t = tr.t.Add(dt)
			tr.lat, tr.lon, tr.alt = lat, lon, alt
			tr.record()
			return tr
		}
		bearing := spatial.Bearing(tr.lat, tr.lon, lat, lon)
		tr.lat, tr.lon = spatial.DestinationPoint(tr.lat, tr.lon, bearing, stepDist)
		tr.alt += altRate * stepDist
		tr.t = tr.t.Add(tr.step)
		tr.record()
	}
}
