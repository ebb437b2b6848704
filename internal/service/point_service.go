package service

import (
	"log"
	"sort"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/owntracks"
	"github.com/lifelog-tools/activity-backend-go/internal/repository"
)

// PointService handles ingestion and querying of location points
type PointService struct {
	repo *repository.PointRepository
}

// NewPointService creates a new point service
func NewPointService(repo *repository.PointRepository) *PointService {
	return &PointService{repo: repo}
}

// Ingest converts and stores a batch of OwnTracks-style points. Points with
// unparseable timestamps are dropped with a warning, not rejected wholesale.
// Returns how many were stored and how many were dropped.
func (s *PointService) Ingest(raw []owntracks.Point, source string) (int, int, error) {
	points, dropped := owntracks.Convert(raw)
	if dropped > 0 {
		log.Printf("[PointService] Dropped %d point(s) with unparseable timestamps", dropped)
	}
	if source != "" {
		for i := range points {
			points[i].Source = source
		}
	}

	// Ingest order is not guaranteed by trackers
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	stored, err := s.repo.InsertBatch(points)
	if err != nil {
		return 0, dropped, err
	}
	return stored, dropped, nil
}

// GetPoints retrieves points with filtering and pagination
func (s *PointService) GetPoints(filter models.PointFilter) ([]models.LocationPoint, int64, error) {
	return s.repo.GetPoints(filter)
}
