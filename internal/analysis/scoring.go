package analysis

import "github.com/lifelog-tools/activity-backend-go/internal/models"

// Confidence label thresholds. These are fixed across all activity types: no
// analyzer defines its own mapping, so HIGH/MEDIUM/LOW mean the same thing
// whether a session came from the golf or the snowboarding analyzer.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.6
	LowThreshold    = 0.4
)

// ConfidenceLabel maps a normalized score to its label. Scores below the
// classification floor return the empty string, meaning "not classified".
func ConfidenceLabel(score float64) string {
	switch {
	case score >= HighThreshold:
		return models.ConfidenceHigh
	case score >= MediumThreshold:
		return models.ConfidenceMedium
	case score >= LowThreshold:
		return models.ConfidenceLow
	default:
		return ""
	}
}

// Factor is one named confidence criterion with a value in [0,1]. Its weight
// comes from the activity's configured weight table.
type Factor struct {
	Name  string
	Value float64
}

// Score computes the weighted confidence for a factor set. Weights are
// integers summing to 100 (validated at config load), so the weighted sum
// normalizes to [0,1]. Factors without a configured weight contribute
// nothing.
func (b *Base) Score(factors []Factor) float64 {
	total := 0.0
	for _, f := range factors {
		w, ok := b.Config.Weights[f.Name]
		if !ok {
			continue
		}
		total += float64(w) * clamp01(f.Value)
	}
	score := total / 100.0
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RangeScore grades how well v matches an inclusive range: 1.0 inside,
// decaying linearly to 0 at one full range-span outside either bound.
func RangeScore(v float64, r models.Range) float64 {
	if r.Contains(v) {
		return 1
	}
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	var outside float64
	if v < r.Min {
		outside = r.Min - v
	} else {
		outside = v - r.Max
	}
	return clamp01(1 - outside/span)
}

// BoolScore converts a yes/no criterion to a factor value.
func BoolScore(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
