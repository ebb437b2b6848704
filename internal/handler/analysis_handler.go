package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifelog-tools/activity-backend-go/internal/service"
	"github.com/lifelog-tools/activity-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests that run the detection pipeline
type AnalysisHandler struct {
	service *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// AnalyzeDay handles POST /api/v1/analysis/day
func (h *AnalysisHandler) AnalyzeDay(c *gin.Context) {
	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	sessions, err := h.service.AnalyzeDay(c.Request.Context(), body.Date)
	if err != nil {
		// A day without data is not a day without activity
		if errors.Is(err, service.ErrNoData) {
			response.NotFound(c, "No location data available for "+body.Date)
			return
		}
		response.InternalError(c, "Analysis failed", err)
		return
	}

	response.Success(c, gin.H{
		"date":     body.Date,
		"sessions": sessions,
	})
}

// AnalyzeTrip handles POST /api/v1/analysis/trip
func (h *AnalysisHandler) AnalyzeTrip(c *gin.Context) {
	var body struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	for _, d := range []string{body.StartDate, body.EndDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
	}

	result, err := h.service.AnalyzeTrip(c.Request.Context(), body.StartDate, body.EndDate)
	if err != nil {
		response.InternalError(c, "Trip analysis failed", err)
		return
	}

	response.Success(c, result)
}
