package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/spatial"
)

// minSlopeDegrees is the slope magnitude below which a pair is not considered
// ascending or descending for lift/descent classification.
const minSlopeDegrees = 2.0

// maxSampleGapSeconds is the largest inter-point interval still treated as
// continuous tracking. A pair spanning longer than this carries no movement
// information and becomes a gap between segments instead.
const maxSampleGapSeconds = 600

// Segmenter converts a time-ordered point sequence into velocity segments
// using an activity's configured velocity bands.
type Segmenter struct {
	bands map[string]models.VelocityBand
}

// NewSegmenter creates a segmenter over the given velocity bands.
func NewSegmenter(bands map[string]models.VelocityBand) *Segmenter {
	return &Segmenter{bands: bands}
}

// pairSample is one consecutive-point pair before mode merging.
type pairSample struct {
	start, end models.LocationPoint
	velocity   float64
	distance   float64
	elapsed    float64
	altDelta   float64
	hasSlope   bool
	slope      float64
	mode       string
}

// Segment pairs consecutive points, classifies each pair's movement mode, and
// merges runs of same-mode pairs into contiguous VelocitySegments. Input must
// be time-ordered; an out-of-order timestamp is an error. Pairs with zero
// elapsed time are dropped as degenerate rather than treated as infinite
// velocity.
func (s *Segmenter) Segment(points []models.LocationPoint) ([]models.VelocitySegment, error) {
	if len(points) < 2 {
		return nil, nil
	}

	var pairs []pairSample
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		elapsed := cur.Time.Sub(prev.Time).Seconds()
		if elapsed < 0 {
			return nil, fmt.Errorf("out-of-order points at index %d: %s after %s",
				i, cur.Time.Format(time.RFC3339), prev.Time.Format(time.RFC3339))
		}
		if elapsed == 0 {
			// Degenerate pair
			continue
		}
		if elapsed > maxSampleGapSeconds {
			// Tracking gap; the interval between the resulting segments is
			// what Cluster splits on.
			continue
		}

		dist := spatial.HaversineDistance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
		p := pairSample{
			start:    prev,
			end:      cur,
			velocity: dist / elapsed,
			distance: dist,
			elapsed:  elapsed,
		}

		if prev.Altitude != nil && cur.Altitude != nil {
			p.altDelta = *cur.Altitude - *prev.Altitude
			p.slope = spatial.SlopeAngle(p.altDelta, dist)
			p.hasSlope = true
		}

		p.mode = s.classify(p.velocity, p.slope, p.hasSlope)
		pairs = append(pairs, p)
	}

	return mergePairs(pairs), nil
}

// classify maps a pair's velocity (and slope, when altitude data exists) to a
// movement mode. Slope-dependent modes take precedence so that a lift ride is
// not mistaken for a walk at the same speed.
func (s *Segmenter) classify(velocity, slope float64, hasSlope bool) string {
	if hasSlope && slope >= minSlopeDegrees {
		if b, ok := s.bands[models.ModeLift]; ok && b.Contains(velocity) {
			return models.ModeLift
		}
	}
	if hasSlope && slope <= -minSlopeDegrees {
		if b, ok := s.bands[models.ModeDescent]; ok && b.Contains(velocity) {
			return models.ModeDescent
		}
	}
	if b, ok := s.bands[models.ModeTrain]; ok && b.Contains(velocity) {
		return models.ModeTrain
	}
	if b, ok := s.bands[models.ModeRunning]; ok && b.Contains(velocity) {
		return models.ModeRunning
	}
	if b, ok := s.bands[models.ModeWalking]; ok && b.Contains(velocity) {
		return models.ModeWalking
	}
	if b, ok := s.bands[models.ModeWalking]; ok && velocity < b.Min {
		return models.ModeStationary
	}
	return models.ModeUnknown
}

// mergePairs folds consecutive same-mode pairs into VelocitySegments.
func mergePairs(pairs []pairSample) []models.VelocitySegment {
	if len(pairs) == 0 {
		return nil
	}

	var segments []models.VelocitySegment
	cur := segmentFromPair(pairs[0])
	slopeComplete := pairs[0].hasSlope

	for _, p := range pairs[1:] {
		if p.mode != cur.Mode || !p.start.Time.Equal(cur.EndTime) {
			finalizeSegment(&cur, slopeComplete)
			segments = append(segments, cur)
			cur = segmentFromPair(p)
			slopeComplete = p.hasSlope
			continue
		}
		cur.EndTime = p.end.Time
		cur.EndLat = p.end.Latitude
		cur.EndLon = p.end.Longitude
		cur.Distance += p.distance
		cur.Duration += p.elapsed
		cur.AltitudeDelta += p.altDelta
		slopeComplete = slopeComplete && p.hasSlope
	}

	finalizeSegment(&cur, slopeComplete)
	segments = append(segments, cur)
	return segments
}

func segmentFromPair(p pairSample) models.VelocitySegment {
	return models.VelocitySegment{
		StartTime:     p.start.Time,
		EndTime:       p.end.Time,
		StartLat:      p.start.Latitude,
		StartLon:      p.start.Longitude,
		EndLat:        p.end.Latitude,
		EndLon:        p.end.Longitude,
		Distance:      p.distance,
		Duration:      p.elapsed,
		Mode:          p.mode,
		AltitudeDelta: p.altDelta,
	}
}

func finalizeSegment(seg *models.VelocitySegment, slopeComplete bool) {
	if seg.Duration > 0 {
		seg.Velocity = seg.Distance / seg.Duration
	}
	if slopeComplete && seg.Distance > 0 {
		seg.SlopeAngle = spatial.SlopeAngle(seg.AltitudeDelta, seg.Distance)
		seg.HasSlope = true
	}
}

// Cluster groups segments into candidate sessions: a session is a maximal run
// of segments whose inter-segment gap never exceeds the tolerance. Larger
// gaps start a new candidate.
func Cluster(segments []models.VelocitySegment, gapTolerance time.Duration) []Candidate {
	if len(segments) == 0 {
		return nil
	}

	var candidates []Candidate
	start := 0
	for i := 1; i < len(segments); i++ {
		if segments[i-1].Gap(segments[i]) > gapTolerance {
			candidates = append(candidates, newCandidate(segments[start:i]))
			start = i
		}
	}
	candidates = append(candidates, newCandidate(segments[start:]))
	return candidates
}

// Candidate is a clustered run of velocity segments under evaluation by one
// analyzer. Discarding a candidate is not an error; it is simply absent from
// the output.
type Candidate struct {
	Segments  []models.VelocitySegment
	StartTime time.Time
	EndTime   time.Time
	Distance  float64 // summed segment distance, meters
}

func newCandidate(segments []models.VelocitySegment) Candidate {
	c := Candidate{
		Segments:  segments,
		StartTime: segments[0].StartTime,
		EndTime:   segments[len(segments)-1].EndTime,
	}
	for _, s := range segments {
		c.Distance += s.Distance
	}
	return c
}

// Duration is the candidate's overall elapsed time, gaps included.
func (c Candidate) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

// MovingDuration is the summed duration of the segments themselves.
func (c Candidate) MovingDuration() float64 {
	total := 0.0
	for _, s := range c.Segments {
		total += s.Duration
	}
	return total
}

// ModeShare returns the fraction of segment time spent in the given modes.
func (c Candidate) ModeShare(modes ...string) float64 {
	total := c.MovingDuration()
	if total == 0 {
		return 0
	}
	part := 0.0
	for _, s := range c.Segments {
		for _, m := range modes {
			if s.Mode == m {
				part += s.Duration
				break
			}
		}
	}
	return part / total
}

// MaxVelocity returns the fastest segment velocity in the candidate.
func (c Candidate) MaxVelocity() float64 {
	max := 0.0
	for _, s := range c.Segments {
		if s.Velocity > max {
			max = s.Velocity
		}
	}
	return max
}

// Centroid returns the unweighted mean of the candidate's segment endpoints.
func (c Candidate) Centroid() (float64, float64) {
	if len(c.Segments) == 0 {
		return 0, 0
	}
	var lat, lon float64
	n := 0
	for _, s := range c.Segments {
		lat += s.StartLat + s.EndLat
		lon += s.StartLon + s.EndLon
		n += 2
	}
	return lat / float64(n), lon / float64(n)
}

// DescentStats sums vertical drop and averages velocity over descent
// segments.
func (c Candidate) DescentStats() (verticalM float64, avgVelocity float64) {
	count := 0
	for _, s := range c.Segments {
		if s.Mode != models.ModeDescent {
			continue
		}
		verticalM += math.Abs(s.AltitudeDelta)
		avgVelocity += s.Velocity
		count++
	}
	if count > 0 {
		avgVelocity /= float64(count)
	}
	return verticalM, avgVelocity
}
