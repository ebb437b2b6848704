package owntracks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/location"
	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// ErrNoData means the recorder had no points for the requested range. Callers
// must report this distinctly from "zero activities detected": a day without
// data is not a day without activity.
var ErrNoData = errors.New("no location data available")

// Client fetches location points from an OwnTracks-recorder-compatible HTTP
// API.
type Client struct {
	BaseURL    string
	User       string
	Device     string
	HTTPClient *http.Client
}

// NewClient creates a recorder client with a default timeout.
func NewClient(baseURL, user, device string) *Client {
	return &Client{
		BaseURL:    baseURL,
		User:       user,
		Device:     device,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Point is one element of the recorder's locations payload. The
// timestamp field varies between deployments (Unix seconds, Unix float, or
// ISO-8601 string), so it is parsed through location.ParseTimestamp.
type Point struct {
	Tst json.RawMessage `json:"tst"`
	Lat float64         `json:"lat"`
	Lon float64         `json:"lon"`
	Alt *float64        `json:"alt,omitempty"`
	Acc *float64        `json:"acc,omitempty"`
}

// FetchDay fetches one UTC calendar day of points, ordered by time. Points
// with unparseable timestamps are dropped with a warning; an empty result is
// ErrNoData.
func (c *Client) FetchDay(ctx context.Context, date string) ([]models.LocationPoint, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	params := url.Values{}
	params.Set("user", c.User)
	params.Set("device", c.Device)
	params.Set("from", day.Format("2006-01-02T15:04:05"))
	params.Set("to", day.AddDate(0, 0, 1).Format("2006-01-02T15:04:05"))
	params.Set("format", "json")

	endpoint := fmt.Sprintf("%s/api/0/locations?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recorder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("recorder returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data []Point `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode recorder response: %w", err)
	}

	points, dropped := Convert(payload.Data)
	if dropped > 0 {
		log.Printf("[OwnTracks] Dropped %d point(s) with unparseable timestamps", dropped)
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	return points, nil
}

// Convert parses recorder points into LocationPoints sorted by time, counting
// points dropped for unparseable timestamps. Recorder payloads are not
// guaranteed ordered, and the segmenter rejects out-of-order input.
func Convert(raw []Point) ([]models.LocationPoint, int) {
	var points []models.LocationPoint
	dropped := 0

	for _, rp := range raw {
		var tst interface{}
		if err := json.Unmarshal(rp.Tst, &tst); err != nil {
			dropped++
			continue
		}
		t, err := location.ParseTimestamp(tst)
		if err != nil {
			dropped++
			continue
		}
		points = append(points, models.LocationPoint{
			Time:      t,
			Latitude:  rp.Lat,
			Longitude: rp.Lon,
			Altitude:  rp.Alt,
			Accuracy:  rp.Acc,
			Source:    "owntracks",
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points, dropped
}
