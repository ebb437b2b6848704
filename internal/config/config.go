package config

import (
	"os"
)

// Config holds process-level configuration
type Config struct {
	Port          string
	DBPath        string
	AnalysisPath  string // path to the analysis thresholds document
	LocationsPath string // path to the known-locations registry
	OwnTracksURL  string // base URL of the OwnTracks-compatible recorder, empty disables upstream fetch
	OwnTracksUser string
	OwnTracksDev  string
}

// Load reads configuration from the environment with sensible defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/activity/activity.db"
	}

	analysisPath := os.Getenv("ANALYSIS_CONFIG_PATH")
	if analysisPath == "" {
		analysisPath = "./config/analysis.json"
	}

	locationsPath := os.Getenv("KNOWN_LOCATIONS_PATH")
	if locationsPath == "" {
		locationsPath = "./config/known_locations.json"
	}

	return &Config{
		Port:          port,
		DBPath:        dbPath,
		AnalysisPath:  analysisPath,
		LocationsPath: locationsPath,
		OwnTracksURL:  os.Getenv("OWNTRACKS_URL"),
		OwnTracksUser: os.Getenv("OWNTRACKS_USER"),
		OwnTracksDev:  os.Getenv("OWNTRACKS_DEVICE"),
	}
}
