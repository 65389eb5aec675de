package analyzer

import (
	"unicode/utf8"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// CountLabels counts records per label.
func CountLabels(records []sentiment.Record) Counts {
	counts := make(Counts, len(sentiment.Labels))
	for _, l := range sentiment.Labels {
		counts[l] = 0
	}
	for _, r := range records {
		counts[r.Sentiment]++
	}
	return counts
}

// ComputePercentages returns 100*count/total per label. It returns
// ErrEmptyHistory when the counts total zero.
func ComputePercentages(counts Counts) (Percentages, error) {
	total := counts.Total()
	if total == 0 {
		return nil, ErrEmptyHistory
	}

	pct := make(Percentages, len(sentiment.Labels))
	for _, l := range sentiment.Labels {
		pct[l] = 100 * float64(counts[l]) / float64(total)
	}
	return pct, nil
}

// Summarize computes the dashboard summary. An empty history yields zero
// counts and percentages and no dominant label.
func Summarize(records []sentiment.Record) Summary {
	counts := CountLabels(records)
	s := Summary{
		Total:  len(records),
		Counts: counts,
	}

	pct, err := ComputePercentages(counts)
	if err != nil {
		pct = make(Percentages, len(sentiment.Labels))
		for _, l := range sentiment.Labels {
			pct[l] = 0
		}
	}
	s.Percentages = pct

	if len(records) == 0 {
		return s
	}

	s.Dominant = sentiment.Labels[0]
	for _, l := range sentiment.Labels[1:] {
		if counts[l] > counts[s.Dominant] {
			s.Dominant = l
		}
	}

	var sum sentiment.Scores
	for _, r := range records {
		sum.Positive += r.Scores.Positive
		sum.Negative += r.Scores.Negative
		sum.Neutral += r.Scores.Neutral
		sum.Mixed += r.Scores.Mixed
	}
	n := float64(len(records))
	s.MeanScores = sentiment.Scores{
		Positive: sum.Positive / n,
		Negative: sum.Negative / n,
		Neutral:  sum.Neutral / n,
		Mixed:    sum.Mixed / n,
	}

	s.First = records[0].Timestamp
	s.Last = records[len(records)-1].Timestamp
	return s
}

// Recent returns the last n records, most recent first.
func Recent(records []sentiment.Record, n int) []sentiment.Record {
	if n <= 0 {
		return []sentiment.Record{}
	}
	if n > len(records) {
		n = len(records)
	}
	return Reversed(records[len(records)-n:])
}

// Reversed returns a reversed copy of records.
func Reversed(records []sentiment.Record) []sentiment.Record {
	out := make([]sentiment.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// Project maps records, in order, to trend points.
func Project(records []sentiment.Record) []Point {
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{
			Timestamp: r.Timestamp,
			Label:     r.Sentiment,
			Scores:    r.Scores,
		}
	}
	return points
}

// Excerpt shortens text to at most maxLen runes, ending in "..." when cut.
func Excerpt(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
