package activity

import (
	"log"
	"math"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// GolfAnalyzer detects rounds of golf: long walking sessions at a registered
// golf course with the stop-and-go rhythm of play.
type GolfAnalyzer struct {
	*analysis.Base
	seg *analysis.Segmenter
}

// NewGolfAnalyzer creates a golf analyzer from the loaded analysis config.
func NewGolfAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*GolfAnalyzer, error) {
	base, err := analysis.NewBase(models.ActivityGolf, cfg, loc)
	if err != nil {
		return nil, err
	}
	return &GolfAnalyzer{
		Base: base,
		seg:  analysis.NewSegmenter(base.Config.VelocityBands),
	}, nil
}

// DetectSessions implements analysis.Analyzer.
func (a *GolfAnalyzer) DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
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

		lat, lon := cand.Centroid()
		course, onCourse := a.Loc.Resolve(lat, lon, models.CategoryGolfCourse)

		score := a.Score([]analysis.Factor{
			{Name: "course_proximity", Value: analysis.BoolScore(onCourse)},
			{Name: "duration_match", Value: analysis.RangeScore(cand.Duration().Minutes(), a.Config.DurationMinutes)},
			{Name: "distance_match", Value: analysis.RangeScore(cand.Distance, a.Config.DistanceMeters)},
			{Name: "walking_share", Value: cand.ModeShare(models.ModeWalking, models.ModeStationary)},
		})

		details := map[string]interface{}{
			"distance_m": math.Round(cand.Distance),
		}
		if holes, ok := holesFromDistance(cand.Distance); ok {
			details["holes"] = holes
		}

		var locPtr *models.KnownLocation
		if onCourse {
			locPtr = &course
		}
		if s, ok := a.NewSession(date, cand, score, locPtr, details); ok {
			sessions = append(sessions, s)
		}
	}

	log.Printf("[GolfAnalyzer] %s: %d session(s) detected", date, len(sessions))
	return sessions, nil
}

// holesFromDistance infers holes played from the total distance covered:
// 3.0-5.0 km reads as 9 holes, 6.0-10.0 km as a full 18. Distances outside
// both buckets leave the hole count unknown.
func holesFromDistance(d float64) (int, bool) {
	switch {
	case d >= 3000 && d < 5000:
		return 9, true
	case d >= 6000 && d <= 10000:
		return 18, true
	default:
		return 0, false
	}
}
