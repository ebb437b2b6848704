package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/owntracks"
	"github.com/lifelog-tools/activity-backend-go/internal/service"
	"github.com/lifelog-tools/activity-backend-go/pkg/response"
)

// PointHandler handles HTTP requests for location points
type PointHandler struct {
	service *service.PointService
}

// NewPointHandler creates a new point handler
func NewPointHandler(service *service.PointService) *PointHandler {
	return &PointHandler{service: service}
}

// IngestPoints handles POST /api/v1/points
func (h *PointHandler) IngestPoints(c *gin.Context) {
	var body struct {
		Source string            `json:"source"`
		Points []owntracks.Point `json:"points"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if len(body.Points) == 0 {
		response.BadRequest(c, "No points supplied", nil)
		return
	}

	stored, dropped, err := h.service.Ingest(body.Points, body.Source)
	if err != nil {
		response.InternalError(c, "Failed to store points", err)
		return
	}

	response.Success(c, gin.H{
		"stored":  stored,
		"dropped": dropped,
	})
}

// GetPoints handles GET /api/v1/points
func (h *PointHandler) GetPoints(c *gin.Context) {
	var filter models.PointFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	points, total, err := h.service.GetPoints(filter)
	if err != nil {
		response.InternalError(c, "Failed to get points", err)
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

	response.Success(c, models.PointsResponse{
		Data:       points,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}
