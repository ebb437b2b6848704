package service

import (
	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/repository"
)

// SessionService handles business logic for activity sessions
type SessionService struct {
	repo *repository.SessionRepository
}

// NewSessionService creates a new session service
func NewSessionService(repo *repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// GetSessions retrieves sessions with filtering and pagination
func (s *SessionService) GetSessions(filter models.SessionFilter) ([]models.ActivitySession, int64, error) {
	return s.repo.GetSessions(filter)
}

// GetByDate retrieves the stored sessions for one date
func (s *SessionService) GetByDate(date string) ([]models.ActivitySession, error) {
	return s.repo.GetByDate(date)
}
