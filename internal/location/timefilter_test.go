package location

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:30", 390, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInClockWindow(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 6, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		t          time.Time
		start, end string
		want       bool
	}{
		{"inside simple window", at(9, 0), "08:00", "10:30", true},
		{"start boundary inclusive", at(8, 0), "08:00", "10:30", true},
		{"end boundary inclusive", at(10, 30), "08:00", "10:30", true},
		{"just after end", at(10, 31), "08:00", "10:30", false},
		{"before start", at(7, 59), "08:00", "10:30", false},
		{"night wrap late evening", at(23, 30), "22:00", "06:00", true},
		{"night wrap early morning", at(0, 30), "22:00", "06:00", true},
		{"night wrap excluded midday", at(12, 0), "22:00", "06:00", false},
		{"night wrap end boundary", at(6, 0), "22:00", "06:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InClockWindow(tt.t, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByTimePeriod(t *testing.T) {
	periods := map[string]models.ClockWindow{
		"morning": {Start: "06:00", End: "12:00"},
		"night":   {Start: "22:00", End: "06:00"},
	}
	a := NewAnalyzer(&models.KnownLocationRegistry{}, periods)

	day := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	points := []models.LocationPoint{
		{Time: day.Add(5 * time.Hour)},          // 05:00
		{Time: day.Add(8 * time.Hour)},          // 08:00
		{Time: day.Add(23*time.Hour + 30*time.Minute)}, // 23:30
	}

	morning, err := a.FilterByTimePeriod(points, "morning")
	require.NoError(t, err)
	require.Len(t, morning, 1)
	assert.Equal(t, 8, morning[0].Time.Hour())

	night, err := a.FilterByTimePeriod(points, "night")
	require.NoError(t, err)
	assert.Len(t, night, 2)

	_, err = a.FilterByTimePeriod(points, "brunch")
	assert.ErrorContains(t, err, "unknown time period")
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	unix := want.Unix()

	tests := []struct {
		name string
		in   interface{}
	}{
		{"int", int(unix)},
		{"int64", unix},
		{"float64", float64(unix)},
		{"json number", json.Number("1704531600")},
		{"numeric string", "1704531600"},
		{"rfc3339", "2024-01-06T09:00:00Z"},
		{"rfc3339 offset", "2024-01-06T10:00:00+01:00"},
		{"bare datetime", "2024-01-06T09:00:00"},
		{"space datetime", "2024-01-06 09:00:00"},
		{"time value", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestampFractionalSeconds(t *testing.T) {
	got, err := ParseTimestamp(1704531600.5)
	require.NoError(t, err)
	assert.Equal(t, int64(1704531600), got.Unix())
	assert.InDelta(t, 5e8, float64(got.Nanosecond()), 1e3)
}

func TestParseTimestampErrors(t *testing.T) {
	for _, in := range []interface{}{"not a time", "", true, nil, []int{1}} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, "input %v", in)
	}
}
