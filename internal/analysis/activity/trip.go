package activity

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// DateLayout is the calendar-date format used throughout the analysis API.
const DateLayout = "2006-01-02"

// TripAnalyzer orchestrates the closed set of activity analyzers over one or
// more days. Analyzers share no mutable state, so invocation order does not
// affect results; overlapping classifications from different analyzers are
// kept as-is.
type TripAnalyzer struct {
	analyzers []analysis.Analyzer
}

// NewTripAnalyzer constructs every concrete analyzer. Construction fails when
// any analyzer's thresholds are missing from the config.
func NewTripAnalyzer(cfg *models.AnalysisConfig, loc *location.Analyzer) (*TripAnalyzer, error) {
	golf, err := NewGolfAnalyzer(cfg, loc)
	if err != nil {
		return nil, err
	}
	parkrun, err := NewParkrunAnalyzer(cfg, loc)
	if err != nil {
		return nil, err
	}
	commute, err := NewCommuteAnalyzer(cfg, loc)
	if err != nil {
		return nil, err
	}
	dog, err := NewDogWalkingAnalyzer(cfg, loc)
	if err != nil {
		return nil, err
	}
	snow, err := NewSnowboardingAnalyzer(cfg, loc)
	if err != nil {
		return nil, err
	}

	return &TripAnalyzer{
		analyzers: []analysis.Analyzer{golf, parkrun, commute, dog, snow},
	}, nil
}

// Analyzers returns the orchestrated analyzer set.
func (t *TripAnalyzer) Analyzers() []analysis.Analyzer {
	return t.analyzers
}

// AnalyzeDay runs every analyzer against the same point set and returns the
// merged sessions sorted by start time. Ties break on activity type so the
// output is reproducible byte for byte.
func (t *TripAnalyzer) AnalyzeDay(points []models.LocationPoint, date string) ([]models.ActivitySession, error) {
	var sessions []models.ActivitySession
	for _, a := range t.analyzers {
		found, err := a.DetectSessions(points, date)
		if err != nil {
			return nil, fmt.Errorf("%s analyzer failed: %w", a.Name(), err)
		}
		sessions = append(sessions, found...)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		}
		return sessions[i].ActivityType < sessions[j].ActivityType
	})

	log.Printf("[TripAnalyzer] %s: %d session(s) across %d analyzers",
		date, len(sessions), len(t.analyzers))
	return sessions, nil
}

// AnalyzeTrip runs AnalyzeDay for every date in [from, to], keyed by date.
// Dates with no points map to empty session lists.
func (t *TripAnalyzer) AnalyzeTrip(pointsByDate map[string][]models.LocationPoint, from, to time.Time) (map[string][]models.ActivitySession, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s before %s",
			to.Format(DateLayout), from.Format(DateLayout))
	}

	result := make(map[string][]models.ActivitySession)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		sessions, err := t.AnalyzeDay(pointsByDate[date], date)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", date, err)
		}
		result[date] = sessions
	}
	return result, nil
}
