package activity

import (
	"log"
	"math"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// ParkrunAnalyzer detects parkrun participation: a ~5 km run on a Saturday
// morning at a registered parkrun venue.
type ParkrunAnalyzer struct {
	*analysis.Base
	seg *analysis.Segmenter
}

// NewParkrunAnalyzer creates a parkrun analyzer from the loaded analysis config.
func NewParkrunAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*ParkrunAnalyzer, error) {
	base, err := analysis.NewBase(models.ActivityParkrun, cfg, loc)
	if err != nil {
		return nil, err
	}
	return &ParkrunAnalyzer{
		Base: base,
		seg:  analysis.NewSegmenter(base.Config.VelocityBands),
	}, nil
}

// DetectSessions implements analysis.Analyzer.
func (a *ParkrunAnalyzer) DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
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

		venue, atVenue := a.Loc.Resolve(cand.Segments[0].StartLat, cand.Segments[0].StartLon, models.CategoryParkrunVenue)
		saturdayMorning := a.OnExpectedDay(cand.StartTime) && a.InWindow(cand.StartTime, "saturday_morning")

		score := a.Score([]analysis.Factor{
			{Name: "venue_proximity", Value: analysis.BoolScore(atVenue)},
			{Name: "saturday_morning", Value: analysis.BoolScore(saturdayMorning)},
			{Name: "duration_match", Value: analysis.RangeScore(cand.Duration().Minutes(), a.Config.DurationMinutes)},
			{Name: "distance_match", Value: analysis.RangeScore(cand.Distance, a.Config.DistanceMeters)},
			{Name: "running_share", Value: cand.ModeShare(models.ModeRunning)},
		})

		details := map[string]interface{}{
			"distance_m": math.Round(cand.Distance),
		}

		var locPtr *models.KnownLocation
		if atVenue {
			locPtr = &venue
		}
		if s, ok := a.NewSession(date, cand, score, locPtr, details); ok {
			sessions = append(sessions, s)
		}
	}

	log.Printf("[ParkrunAnalyzer] %s: %d session(s) detected", date, len(sessions))
	return sessions, nil
}
