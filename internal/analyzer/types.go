package analyzer

import (
	"time"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// Counts maps every label to the number of records carrying it. All four
// labels are always present.
type Counts map[sentiment.Label]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Percentages maps every label to its share of the history, 0-100.
type Percentages map[sentiment.Label]float64

// Summary holds the figures shown on the dashboard.
type Summary struct {
	Total       int
	Counts      Counts
	Percentages Percentages // all zero when Total is 0
	Dominant    sentiment.Label
	MeanScores  sentiment.Scores
	First       time.Time
	Last        time.Time
}

// Point is a record projected to the fields needed by trend charts.
type Point struct {
	Timestamp time.Time
	Label     sentiment.Label
	Scores    sentiment.Scores
}

// TimelinePoint is one marker on the sentiment timeline.
type TimelinePoint struct {
	Timestamp time.Time
	Label     sentiment.Label
	Value     float64 // see Ordinal
}

// ScorePoint is one sample of a confidence series.
type ScorePoint struct {
	Timestamp time.Time
	Value     float64
}

// Trends holds the sentiment timeline and one confidence series per label.
type Trends struct {
	Timeline   []TimelinePoint
	Confidence map[sentiment.Label][]ScorePoint
}
