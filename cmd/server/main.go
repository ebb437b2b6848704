package main

import (
	"log"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis/activity"
	"github.com/lifelog-tools/activity-backend-go/internal/api"
	"github.com/lifelog-tools/activity-backend-go/internal/config"
	"github.com/lifelog-tools/activity-backend-go/internal/database"
	"github.com/lifelog-tools/activity-backend-go/internal/handler"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/owntracks"
	"github.com/lifelog-tools/activity-backend-go/internal/repository"
	"github.com/lifelog-tools/activity-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	analysisCfg, err := config.LoadAnalysisConfig(cfg.AnalysisPath)
	if err != nil {
		log.Fatal("Failed to load analysis config: ", err)
	}
	registry, err := config.LoadKnownLocations(cfg.LocationsPath)
	if err != nil {
		log.Fatal("Failed to load known locations: ", err)
	}
	locAnalyzer := location.NewAnalyzer(registry, analysisCfg.TimePeriods)

	trip, err := activity.NewTripAnalyzer(analysisCfg, locAnalyzer)
	if err != nil {
		log.Fatal("Failed to build analyzers: ", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	pointRepo := repository.NewPointRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	var upstream *owntracks.Client
	if cfg.OwnTracksURL != "" {
		upstream = owntracks.NewClient(cfg.OwnTracksURL, cfg.OwnTracksUser, cfg.OwnTracksDev)
	}

	router := api.SetupRouter(api.Handlers{
		Points:    handler.NewPointHandler(service.NewPointService(pointRepo)),
		Sessions:  handler.NewSessionHandler(service.NewSessionService(sessionRepo)),
		Analysis:  handler.NewAnalysisHandler(service.NewAnalysisService(trip, pointRepo, sessionRepo, upstream)),
		Locations: handler.NewLocationHandler(locAnalyzer),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
