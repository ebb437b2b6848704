package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifelog-tools/activity-backend-go/internal/handler"
	"github.com/lifelog-tools/activity-backend-go/internal/middleware"
)

// Handlers groups the handlers wired into the router
type Handlers struct {
	Points    *handler.PointHandler
	Sessions  *handler.SessionHandler
	Analysis  *handler.AnalysisHandler
	Locations *handler.LocationHandler
}

// SetupRouter builds the Gin engine with middleware and all routes
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Activity Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		points := api.Group("/points")
		{
			points.POST("", h.Points.IngestPoints)
			points.GET("", h.Points.GetPoints)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", h.Sessions.GetSessions)
			sessions.GET("/:date", h.Sessions.GetSessionsByDate)
		}

		analysis := api.Group("/analysis")
		{
			analysis.POST("/day", h.Analysis.AnalyzeDay)
			analysis.POST("/trip", h.Analysis.AnalyzeTrip)
		}

		api.GET("/locations", h.Locations.GetLocations)
	}

	return r
}
