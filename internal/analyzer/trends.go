package analyzer

import (
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// MinTrendPoints is the number of analyses needed before trends are shown.
const MinTrendPoints = 2

// Ordinal maps a label onto the timeline axis: POSITIVE=3, NEUTRAL=2,
// MIXED=1.5, NEGATIVE=1. Unknown labels map to 0.
func Ordinal(l sentiment.Label) float64 {
	switch l {
	case sentiment.Positive:
		return 3
	case sentiment.Neutral:
		return 2
	case sentiment.Mixed:
		return 1.5
	case sentiment.Negative:
		return 1
	default:
		return 0
	}
}

// BuildTrends builds the timeline and the four confidence series from
// chronologically ordered points.
func BuildTrends(points []Point) (*Trends, error) {
	if len(points) < MinTrendPoints {
		return nil, ErrNotEnoughData
	}

	t := &Trends{
		Timeline:   make([]TimelinePoint, len(points)),
		Confidence: make(map[sentiment.Label][]ScorePoint, len(sentiment.Labels)),
	}
	for _, l := range sentiment.Labels {
		t.Confidence[l] = make([]ScorePoint, len(points))
	}

	for i, p := range points {
		t.Timeline[i] = TimelinePoint{
			Timestamp: p.Timestamp,
			Label:     p.Label,
			Value:     Ordinal(p.Label),
		}
		for _, l := range sentiment.Labels {
			t.Confidence[l][i] = ScorePoint{Timestamp: p.Timestamp, Value: p.Scores.Get(l)}
		}
	}

	return t, nil
}
