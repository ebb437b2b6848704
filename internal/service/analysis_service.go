package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis/activity"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/owntracks"
	"github.com/lifelog-tools/activity-backend-go/internal/repository"
)

// ErrNoData is re-exported so handlers need not import the owntracks package
// to branch on the "no data available" condition.
var ErrNoData = owntracks.ErrNoData

// TripResult holds per-day sessions for a date range. NoDataDates lists days
// where no location data was available, which is reported distinctly from
// days that simply had no detectable activities.
type TripResult struct {
	Days        map[string][]models.ActivitySession `json:"days"`
	NoDataDates []string                            `json:"no_data_dates,omitempty"`
}

// AnalysisService runs the activity detection pipeline over stored points and
// persists the resulting sessions.
type AnalysisService struct {
	trip     *activity.TripAnalyzer
	points   *repository.PointRepository
	sessions *repository.SessionRepository
	upstream *owntracks.Client // nil when no recorder is configured
}

// NewAnalysisService creates a new analysis service. upstream may be nil.
func NewAnalysisService(trip *activity.TripAnalyzer, points *repository.PointRepository, sessions *repository.SessionRepository, upstream *owntracks.Client) *AnalysisService {
	return &AnalysisService{
		trip:     trip,
		points:   points,
		sessions: sessions,
		upstream: upstream,
	}
}

// loadDay returns the date's points from storage, falling back to the
// upstream recorder when storage is empty. ErrNoData when neither has any.
func (s *AnalysisService) loadDay(ctx context.Context, date string) ([]models.LocationPoint, error) {
	points, err := s.points.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		return points, nil
	}

	if s.upstream == nil {
		return nil, ErrNoData
	}

	log.Printf("[AnalysisService] No stored points for %s, fetching from recorder", date)
	fetched, err := s.upstream.FetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if _, err := s.points.InsertBatch(fetched); err != nil {
		return nil, fmt.Errorf("failed to store fetched points: %w", err)
	}
	return fetched, nil
}

// AnalyzeDay runs every activity analyzer over the date's points, replaces
// the date's stored sessions, and returns them sorted by start time.
func (s *AnalysisService) AnalyzeDay(ctx context.Context, date string) ([]models.ActivitySession, error) {
	if _, err := time.Parse(activity.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	points, err := s.loadDay(ctx, date)
	if err != nil {
		return nil, err
	}

	sessions, err := s.trip.AnalyzeDay(points, date)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.ReplaceForDate(date, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// AnalyzeTrip runs AnalyzeDay for every date in [startDate, endDate]. Days
// without data are collected in NoDataDates instead of failing the whole
// trip.
func (s *AnalysisService) AnalyzeTrip(ctx context.Context, startDate, endDate string) (*TripResult, error) {
	from, err := time.Parse(activity.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	to, err := time.Parse(activity.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s before %s", endDate, startDate)
	}

	result := &TripResult{Days: make(map[string][]models.ActivitySession)}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(activity.DateLayout)
		sessions, err := s.AnalyzeDay(ctx, date)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				result.NoDataDates = append(result.NoDataDates, date)
				continue
			}
			return nil, fmt.Errorf("day %s: %w", date, err)
		}
		result.Days[date] = sessions
	}
	return result, nil
}
