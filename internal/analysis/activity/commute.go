package activity

import (
	"fmt"
	"log"
	"math"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/spatial"
)

// Commute direction constants
const (
	DirectionToOffice = "to_office"
	DirectionToHome   = "to_home"
)

// CommuteAnalyzer detects home/office commutes: weekday sessions leaving one
// endpoint in the morning window or the other in the evening window, usually
// with a rail leg in the middle.
type CommuteAnalyzer struct {
	*analysis.Base
	seg    *analysis.Segmenter
	home   models.KnownLocation
	office models.KnownLocation
}

// NewCommuteAnalyzer creates a commute analyzer. The registry must contain at
// least one home and one office location; both are resolved eagerly here so a
// misconfigured registry fails at startup rather than mid-analysis.
func NewCommuteAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*CommuteAnalyzer, error) {
	base, err := analysis.NewBase(models.ActivityCommute, cfg, loc)
	if err != nil {
		return nil, err
	}

	homes := loc.ByCategory(models.CategoryHome)
	if len(homes) == 0 {
		return nil, fmt.Errorf("commute analyzer: no %q location registered", models.CategoryHome)
	}
	offices := loc.ByCategory(models.CategoryOffice)
	if len(offices) == 0 {
		return nil, fmt.Errorf("commute analyzer: no %q location registered", models.CategoryOffice)
	}

	return &CommuteAnalyzer{
		Base:   base,
		seg:    analysis.NewSegmenter(base.Config.VelocityBands),
		home:   homes[0],
		office: offices[0],
	}, nil
}

// DetectSessions implements analysis.Analyzer.
func (a *CommuteAnalyzer) DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
	segments, err := a.seg.Segment(points)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, nil
	}

	var sessions []models.ActivitySession
	for _, cand := range analysis.Cluster(segments, a.GapTolerance()) {
		if !a.DurationOK(cand.Duration()) {
			continue
		}

		first := cand.Segments[0]
		last := cand.Segments[len(cand.Segments)-1]
		startNearHome := spatial.HaversineDistance(first.StartLat, first.StartLon, a.home.Latitude, a.home.Longitude) <= a.home.RadiusM
		startNearOffice := spatial.HaversineDistance(first.StartLat, first.StartLon, a.office.Latitude, a.office.Longitude) <= a.office.RadiusM

		// Direction pairs the start endpoint with the clock window: leaving
		// home in the morning heads to the office, leaving the office in the
		// evening heads home. Anything else is not a commute.
		var direction string
		var dest models.KnownLocation
		switch {
		case startNearHome && a.InWindow(cand.StartTime, "morning"):
			direction = DirectionToOffice
			dest = a.office
		case startNearOffice && a.InWindow(cand.StartTime, "evening"):
			direction = DirectionToHome
			dest = a.home
		default:
			continue
		}

		// The start endpoint is already established; the destination half
		// only counts when the session actually reached it.
		endpoints := 0.5
		reachedDest := spatial.HaversineDistance(last.EndLat, last.EndLon, dest.Latitude, dest.Longitude) <= dest.RadiusM
		if reachedDest {
			endpoints += 0.5
		}

		// A commute without a rail leg still scores, just lower.
		transit := math.Min(cand.ModeShare(models.ModeTrain)/0.3, 1)

		score := a.Score([]analysis.Factor{
			{Name: "endpoints_proximity", Value: endpoints},
			{Name: "time_window", Value: 1},
			{Name: "weekday_match", Value: analysis.BoolScore(a.OnExpectedDay(cand.StartTime))},
			{Name: "transit_share", Value: transit},
			{Name: "duration_match", Value: analysis.RangeScore(cand.Duration().Minutes(), a.Config.DurationMinutes)},
		})

		details := map[string]interface{}{
			"direction":  direction,
			"distance_m": math.Round(cand.Distance),
		}

		var destPtr *models.KnownLocation
		if reachedDest {
			destPtr = &dest
		}
		if s, ok := a.NewSession(date, cand, score, destPtr, details); ok {
			sessions = append(sessions, s)
		}
	}

	log.Printf("[CommuteAnalyzer] %s: %d session(s) detected", date, len(sessions))
	return sessions, nil
}
