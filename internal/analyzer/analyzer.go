// Package analyzer computes the derived metrics shown by the dashboard and
// trends views: per-label counts and percentages, summary figures and the
// time series used for charts. Every function works from the record
// sequence alone; nothing is cached between calls.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

var (
	// ErrEmptyHistory is returned by computations that are undefined on an
	// empty history, such as percentages.
	ErrEmptyHistory = errors.New("no analyses recorded yet")

	// ErrNotEnoughData is returned by BuildTrends when fewer than
	// MinTrendPoints records exist.
	ErrNotEnoughData = fmt.Errorf("need at least %d analyses to show trends", MinTrendPoints)
)

// RecordSource provides the full history in chronological order.
type RecordSource interface {
	Records() ([]sentiment.Record, error)
}

// Analyzer computes dashboard and trend views over a record source.
type Analyzer struct {
	source RecordSource
}

// New creates a new Analyzer instance over the given source.
func New(source RecordSource) *Analyzer {
	return &Analyzer{source: source}
}

// GetSummary returns the dashboard summary for the current history.
func (a *Analyzer) GetSummary() (Summary, error) {
	records, err := a.source.Records()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load records: %w", err)
	}
	return Summarize(records), nil
}

// GetTrends returns the timeline and confidence series for the current
// history. It returns ErrNotEnoughData below MinTrendPoints records.
func (a *Analyzer) GetTrends() (*Trends, error) {
	records, err := a.source.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return BuildTrends(Project(records))
}
