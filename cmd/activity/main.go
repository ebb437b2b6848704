package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifelog-tools/activity-backend-go/internal/analysis"
	"github.com/lifelog-tools/activity-backend-go/internal/analysis/activity"
	"github.com/lifelog-tools/activity-backend-go/internal/config"
	"github.com/lifelog-tools/activity-backend-go/internal/database"
	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/owntracks"
	"github.com/lifelog-tools/activity-backend-go/internal/repository"
	"github.com/lifelog-tools/activity-backend-go/internal/service"
)

var asJSON bool

func main() {
	root := &cobra.Command{
		Use:          "activity",
		Short:        "Detect activities from stored GPS traces",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "emit structured JSON instead of a summary")

	root.AddCommand(dayCommand(), tripCommand(), ingestCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// env holds the wired-up services shared by the commands.
type env struct {
	db       *sql.DB
	points   *service.PointService
	analysis *service.AnalysisService
}

func setup() (*env, error) {
	cfg := config.Load()

	analysisCfg, err := config.LoadAnalysisConfig(cfg.AnalysisPath)
	if err != nil {
		return nil, err
	}
	registry, err := config.LoadKnownLocations(cfg.LocationsPath)
	if err != nil {
		return nil, err
	}
	locAnalyzer := location.NewAnalyzer(registry, analysisCfg.TimePeriods)

	trip, err := activity.NewTripAnalyzer(analysisCfg, locAnalyzer)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, err
	}

	pointRepo := repository.NewPointRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	var upstream *owntracks.Client
	if cfg.OwnTracksURL != "" {
		upstream = owntracks.NewClient(cfg.OwnTracksURL, cfg.OwnTracksUser, cfg.OwnTracksDev)
	}

	return &env{
		db:       db,
		points:   service.NewPointService(pointRepo),
		analysis: service.NewAnalysisService(trip, pointRepo, sessionRepo, upstream),
	}, nil
}

func dayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "day <date>",
		Short: "Analyze one day (YYYY-MM-DD) and print detected sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			date := args[0]
			sessions, err := e.analysis.AnalyzeDay(context.Background(), date)
			if err != nil {
				if errors.Is(err, service.ErrNoData) {
					return fmt.Errorf("no location data available for %s", date)
				}
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(sessions)
			}
			printDay(date, sessions)
			return nil
		},
	}
}

func tripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trip <start-date> <end-date>",
		Short: "Analyze a date range and print detected sessions per day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			result, err := e.analysis.AnalyzeTrip(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			for date, sessions := range result.Days {
				printDay(date, sessions)
			}
			for _, date := range result.NoDataDates {
				fmt.Printf("%s: no location data available\n", date)
			}
			return nil
		},
	}
}

func ingestCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "ingest <file.json>",
		Short: "Ingest a JSON file of OwnTracks-style points into storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var raw []owntracks.Point
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			stored, dropped, err := e.points.Ingest(raw, source)
			if err != nil {
				return err
			}
			log.Printf("Stored %d point(s), dropped %d", stored, dropped)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "import", "source tag recorded with each point")
	return cmd
}

func printDay(date string, sessions []models.ActivitySession) {
	if len(sessions) == 0 {
		fmt.Printf("%s: no activities detected\n", date)
		return
	}
	fmt.Printf("%s: %d activity session(s)\n", date, len(sessions))
	for _, s := range sessions {
		place := s.LocationName
		if place == "" {
			place = "unknown location"
		}
		fmt.Printf("  %s-%s  %-12s %-6s (%.2f)  %s  %s\n",
			s.StartTime.Format("15:04"), s.EndTime.Format("15:04"),
			s.ActivityType, s.ConfidenceLabel, s.Confidence,
			place, analysis.FormatDuration(s.DurationH*3600))
	}
}
