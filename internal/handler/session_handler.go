package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/service"
	"github.com/lifelog-tools/activity-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for activity sessions
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// GetSessions handles GET /api/v1/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	var filter models.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	sessions, total, err := h.service.GetSessions(filter)
	if err != nil {
		response.InternalError(c, "Failed to get sessions", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, models.SessionsResponse{
		Data:       sessions,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetSessionsByDate handles GET /api/v1/sessions/:date
func (h *SessionHandler) GetSessionsByDate(c *gin.Context) {
	date := c.Param("date")

	sessions, err := h.service.GetByDate(date)
	if err != nil {
		response.InternalError(c, "Failed to get sessions", err)
		return
	}

	response.Success(c, sessions)
}
