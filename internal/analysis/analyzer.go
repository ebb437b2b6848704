package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// AlgoVersion tags every emitted session with the detection algorithm version.
const AlgoVersion = "v1"

// ErrUnknownActivity is returned when an analyzer is constructed for an
// activity type absent from the analysis config.
var ErrUnknownActivity = errors.New("unknown activity type")

// Analyzer is the interface all activity analyzers implement. Analyzers are
// pure over their inputs: the same points, date, and config always produce
// the same sessions.
type Analyzer interface {
	// Name returns the activity type this analyzer detects
	Name() string

	// DetectSessions classifies the day's points into zero or more
	// activity sessions. An empty result is not an error.
	DetectSessions(points []models.LocationPoint, date string) ([]models.ActivitySession, error)
}

// sessionNamespace seeds deterministic session IDs so that re-running an
// analysis over identical input yields identical output.
var sessionNamespace = uuid.MustParse("7a1c49de-3b5f-4f0e-9a14-c2d7aa14b9f6")

// Base carries the shared capability every concrete analyzer composes:
// config access, gap tolerance, clock windows, weighted scoring, and session
// construction. Thresholds are read once at construction and never mutated.
type Base struct {
	name   string
	Config models.ActivityConfig
	Loc    *location.Analyzer
}

// NewBase loads the named activity sub-tree of the analysis config. A missing
// key is a configuration error: the analyzer cannot run without thresholds.
func NewBase(name string, cfg *models.AnalysisConfig, loc *location.Analyzer) (*Base, error) {
	ac, ok := cfg.Activities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, name)
	}
	return &Base{name: name, Config: ac, Loc: loc}, nil
}

// Name returns the activity type.
func (b *Base) Name() string {
	return b.name
}

// GapTolerance returns the configured clustering gap tolerance.
func (b *Base) GapTolerance() time.Duration {
	return time.Duration(b.Config.GapToleranceMinutes * float64(time.Minute))
}

// InWindow reports whether t falls inside the named configured clock window.
// An unconfigured window never matches.
func (b *Base) InWindow(t time.Time, window string) bool {
	w, ok := b.Config.Windows[window]
	if !ok {
		return false
	}
	in, err := location.InClockWindow(t, w.Start, w.End)
	if err != nil {
		return false
	}
	return in
}

// OnExpectedDay reports whether t falls on one of the configured expected
// weekdays. An empty list matches every day.
func (b *Base) OnExpectedDay(t time.Time) bool {
	if len(b.Config.ExpectedDays) == 0 {
		return true
	}
	day := weekdayName(t.Weekday())
	for _, d := range b.Config.ExpectedDays {
		if d == day {
			return true
		}
	}
	return false
}

func weekdayName(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// DurationOK reports whether a candidate's overall duration passes the
// configured [min, max] minutes range.
func (b *Base) DurationOK(d time.Duration) bool {
	return b.Config.DurationMinutes.Contains(d.Minutes())
}

// NewSession builds an ActivitySession for a scored candidate. The boolean is
// false when the score falls below the classification floor, in which case
// the candidate must be discarded, not emitted.
func (b *Base) NewSession(date string, c Candidate, score float64, loc *models.KnownLocation, details map[string]interface{}) (models.ActivitySession, bool) {
	label := ConfidenceLabel(score)
	if label == "" {
		return models.ActivitySession{}, false
	}

	s := models.ActivitySession{
		ActivityType:    b.name,
		Date:            date,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationH:       c.EndTime.Sub(c.StartTime).Hours(),
		Confidence:      score,
		ConfidenceLabel: label,
		Details:         details,
		AlgoVersion:     AlgoVersion,
	}

	if loc != nil {
		s.LocationName = loc.Name
		s.LocationLat = loc.Latitude
		s.LocationLon = loc.Longitude
	}

	// Deterministic ID: identical input and config reproduce the session
	// byte for byte.
	s.ID = uuid.NewSHA1(sessionNamespace, []byte(fmt.Sprintf("%s|%d|%d",
		b.name, c.StartTime.Unix(), c.EndTime.Unix()))).String()

	return s, true
}

// FormatDuration renders a duration in seconds as a short human string, e.g.
// "1h 24m". Presentation only, never used in scoring.
func FormatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
