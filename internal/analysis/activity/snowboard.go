package activity

import (
	"log"
	"math"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// SnowboardingAnalyzer detects snowboarding days: repeated lift-ascent /
// descent cycles at a registered ski resort.
type SnowboardingAnalyzer struct {
	*analysis.Base
	seg *analysis.Segmenter
}

// NewSnowboardingAnalyzer creates a snowboarding analyzer from the loaded
// analysis config.
func NewSnowboardingAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*SnowboardingAnalyzer, error) {
	base, err := analysis.NewBase(models.ActivitySnowboarding, cfg, loc)
	if err != nil {
		return nil, err
	}
	return &SnowboardingAnalyzer{
		Base: base,
		seg:  analysis.NewSegmenter(base.Config.VelocityBands),
	}, nil
}

// DetectSessions implements analysis.Analyzer.
func (a *SnowboardingAnalyzer) DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
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
		resort, atResort := a.Loc.Resolve(lat, lon, models.CategorySkiResort)

		runs := countRuns(cand.Segments)
		verticalM, avgDescent := cand.DescentStats()

		score := a.Score([]analysis.Factor{
			{Name: "resort_proximity", Value: analysis.BoolScore(atResort)},
			{Name: "runs_count", Value: math.Min(float64(runs)/5.0, 1)},
			{Name: "vertical_meters", Value: math.Min(verticalM/1000.0, 1)},
			{Name: "duration_match", Value: analysis.RangeScore(cand.Duration().Minutes(), a.Config.DurationMinutes)},
		})

		details := map[string]interface{}{
			"runs":                     runs,
			"vertical_m":               math.Round(verticalM),
			"avg_descent_velocity_mps": math.Round(avgDescent*10) / 10,
			"max_velocity_mps":         math.Round(cand.MaxVelocity()*10) / 10,
		}

		var locPtr *models.KnownLocation
		if atResort {
			locPtr = &resort
		}
		if s, ok := a.NewSession(date, cand, score, locPtr, details); ok {
			sessions = append(sessions, s)
		}
	}

	log.Printf("[SnowboardingAnalyzer] %s: %d session(s) detected", date, len(sessions))
	return sessions, nil
}

// countRuns counts lift+descent pairs: a run is a descent segment preceded by
// a lift ascent since the previous descent.
func countRuns(segments []models.VelocitySegment) int {
	runs := 0
	liftSeen := false
	for _, s := range segments {
		switch s.Mode {
		case models.ModeLift:
			liftSeen = true
		case models.ModeDescent:
			if liftSeen {
				runs++
				liftSeen = false
			}
		}
	}
	return runs
}
