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

// homeProximityM is how far from home a dog walk is allowed to range.
const homeProximityM = 2000

// stationaryShareRange is the expected fraction of sniffing-and-waiting time
// in a genuine dog walk. Walks with almost no stops look like plain walks,
// walks that are mostly stops look like loitering.
var stationaryShareRange = models.Range{Min: 0.10, Max: 0.30}

// DogWalkingAnalyzer detects dog walks: short walking loops close to home
// with a characteristic share of stationary time.
type DogWalkingAnalyzer struct {
	*analysis.Base
	seg  *analysis.Segmenter
	home models.KnownLocation
}

// NewDogWalkingAnalyzer creates a dog-walking analyzer. Home coordinates are
// resolved eagerly at construction.
func NewDogWalkingAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*DogWalkingAnalyzer, error) {
	base, err := analysis.NewBase(models.ActivityDogWalking, cfg, loc)
	if err != nil {
		return nil, err
	}

	homes := loc.ByCategory(models.CategoryHome)
	if len(homes) == 0 {
		return nil, fmt.Errorf("dog-walking analyzer: no %q location registered", models.CategoryHome)
	}

	return &DogWalkingAnalyzer{
		Base: base,
		seg:  analysis.NewSegmenter(base.Config.VelocityBands),
		home: homes[0],
	}, nil
}

// DetectSessions implements analysis.Analyzer.
func (a *DogWalkingAnalyzer) DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
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
		nearHome := spatial.HaversineDistance(lat, lon, a.home.Latitude, a.home.Longitude) <= homeProximityM

		stationary := cand.ModeShare(models.ModeStationary)

		score := a.Score([]analysis.Factor{
			{Name: "home_proximity", Value: analysis.BoolScore(nearHome)},
			{Name: "stationary_pattern", Value: analysis.RangeScore(stationary, stationaryShareRange)},
			{Name: "walking_share", Value: cand.ModeShare(models.ModeWalking)},
			{Name: "duration_match", Value: analysis.RangeScore(cand.Duration().Minutes(), a.Config.DurationMinutes)},
		})

		details := map[string]interface{}{
			"distance_m":         math.Round(cand.Distance),
			"stationary_percent": math.Round(stationary * 100),
		}

		var locPtr *models.KnownLocation
		if nearHome {
			locPtr = &a.home
		}
		if s, ok := a.NewSession(date, cand, score, locPtr, details); ok {
			sessions = append(sessions, s)
		}
	}

	log.Printf("[DogWalkingAnalyzer] %s: %d session(s) detected", date, len(sessions))
	return sessions, nil
}
