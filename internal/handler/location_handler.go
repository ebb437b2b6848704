package handler

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/pkg/response"
)

// LocationHandler serves the known-location registry
type LocationHandler struct {
	analyzer *location.Analyzer
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(analyzer *location.Analyzer) *LocationHandler {
	return &LocationHandler{analyzer: analyzer}
}

// GetLocations handles GET /api/v1/locations
func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations := h.analyzer.All()
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})
	response.Success(c, locations)
}
