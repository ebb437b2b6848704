package location

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// ParseClock parses a "HH:MM" clock string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return h*60 + m, nil
}

// InClockWindow reports whether t's local clock time falls inside the
// [startClock, endClock] window. Windows whose end is before their start wrap
// past midnight, so a night window of 22:00-06:00 includes both 23:30 and
// 00:30.
func InClockWindow(t time.Time, startClock, endClock string) (bool, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return false, err
	}

	minute := t.Hour()*60 + t.Minute()
	if start <= end {
		return minute >= start && minute <= end, nil
	}
	// Wrapping window
	return minute >= start || minute <= end, nil
}

// FilterByClockRange returns the points whose clock time falls inside the
// given window, with the same midnight-wrap rule as InClockWindow.
func (a *Analyzer) FilterByClockRange(points []models.LocationPoint, startClock, endClock string) ([]models.LocationPoint, error) {
	// Validate once, not per point
	if _, err := ParseClock(startClock); err != nil {
		return nil, err
	}
	if _, err := ParseClock(endClock); err != nil {
		return nil, err
	}

	var out []models.LocationPoint
	for _, p := range points {
		ok, _ := InClockWindow(p.Time, startClock, endClock)
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterByTimePeriod filters points by a named period (morning, afternoon,
// evening, night) from the configured time periods.
func (a *Analyzer) FilterByTimePeriod(points []models.LocationPoint, period string) ([]models.LocationPoint, error) {
	w, ok := a.periods[period]
	if !ok {
		return nil, fmt.Errorf("unknown time period %q", period)
	}
	return a.FilterByClockRange(points, w.Start, w.End)
}

// ParseTimestamp accepts a Unix integer, Unix float, or ISO-8601 string and
// returns the parsed time in UTC. Unrecognized values are an error; callers
// must drop the offending point rather than substitute a zero time.
func ParseTimestamp(v interface{}) (time.Time, error) {
	switch ts := v.(type) {
	case int:
		return time.Unix(int64(ts), 0).UTC(), nil
	case int64:
		return time.Unix(ts, 0).UTC(), nil
	case float64:
		return unixFloat(ts), nil
	case json.Number:
		if i, err := ts.Int64(); err == nil {
			return time.Unix(i, 0).UTC(), nil
		}
		if f, err := ts.Float64(); err == nil {
			return unixFloat(f), nil
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", ts.String())
	case string:
		return parseTimestampString(ts)
	case time.Time:
		return ts.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func unixFloat(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func parseTimestampString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	// Numeric strings are Unix seconds
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(i, 0).UTC(), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return unixFloat(f), nil
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
