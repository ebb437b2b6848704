package config

import (
	"fmt"
	"log"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// jsonTags makes viper decode against the models' json tags.
func jsonTags(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
}

// LoadAnalysisConfig reads the analysis thresholds document from path.
// The document is loaded once at startup and treated as read-only.
func LoadAnalysisConfig(path string) (*models.AnalysisConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read analysis config %s: %w", path, err)
	}

	var cfg models.AnalysisConfig
	if err := v.Unmarshal(&cfg, jsonTags); err != nil {
		return nil, fmt.Errorf("failed to decode analysis config: %w", err)
	}

	if err := validateAnalysisConfig(&cfg); err != nil {
		return nil, err
	}

	log.Printf("[Config] Loaded analysis config: %d activities, %d time periods",
		len(cfg.Activities), len(cfg.TimePeriods))
	return &cfg, nil
}

// validateAnalysisConfig rejects documents that would make scoring undefined.
func validateAnalysisConfig(cfg *models.AnalysisConfig) error {
	if len(cfg.Activities) == 0 {
		return fmt.Errorf("analysis config defines no activities")
	}

	for name, ac := range cfg.Activities {
		sum := 0
		for _, w := range ac.Weights {
			if w < 0 {
				return fmt.Errorf("activity %q: negative confidence weight", name)
			}
			sum += w
		}
		if sum != 100 {
			return fmt.Errorf("activity %q: confidence weights sum to %d, want 100", name, sum)
		}
		if ac.GapToleranceMinutes <= 0 {
			return fmt.Errorf("activity %q: gap tolerance must be positive", name)
		}
		if ac.DurationMinutes.Max > 0 && ac.DurationMinutes.Min > ac.DurationMinutes.Max {
			return fmt.Errorf("activity %q: inverted duration range", name)
		}
	}

	return nil
}

// LoadKnownLocations reads the known-locations registry from path.
func LoadKnownLocations(path string) (*models.KnownLocationRegistry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read known locations %s: %w", path, err)
	}

	var reg models.KnownLocationRegistry
	if err := v.Unmarshal(&reg, jsonTags); err != nil {
		return nil, fmt.Errorf("failed to decode known locations: %w", err)
	}

	seen := make(map[string]bool, len(reg.Locations))
	for _, loc := range reg.Locations {
		if loc.Name == "" {
			return nil, fmt.Errorf("known location with empty name")
		}
		if seen[loc.Name] {
			return nil, fmt.Errorf("duplicate known location %q", loc.Name)
		}
		seen[loc.Name] = true
	}

	log.Printf("[Config] Loaded %d known locations", len(reg.Locations))
	return &reg, nil
}
