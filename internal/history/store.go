// Package history holds the analysis history for one session and answers
// the queries the dashboard, history table and trend views need.
//
// A Store is owned by a single goroutine. It takes no locks: producers on
// other goroutines hand texts to the owner over a channel instead of
// calling the Store directly.
package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// Backend keeps the ordered record sequence. Records must come back from
// All in the order they were appended.
type Backend interface {
	Append(rec sentiment.Record) error
	All() ([]sentiment.Record, error)
	Len() (int, error)
	Clear() error
}

// LabelCounter is implemented by backends that can count labels without
// loading every record.
type LabelCounter interface {
	CountBySentiment() (map[sentiment.Label]int, error)
}

// Store is the session's analysis history.
type Store struct {
	backend   Backend
	generator sentiment.Generator
	clock     clockwork.Clock
	logger    *slog.Logger
	lastStamp time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBackend replaces the default in-memory backend.
func WithBackend(b Backend) Option {
	return func(s *Store) { s.backend = b }
}

// WithGenerator replaces the default random generator.
func WithGenerator(g sentiment.Generator) Option {
	return func(s *Store) { s.generator = g }
}

// WithClock sets the clock used to timestamp records.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		s.backend = NewMemoryBackend()
	}
	if s.generator == nil {
		s.generator = sentiment.NewSeededGenerator(time.Now().UnixNano())
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Record validates text, simulates an analysis and appends the result.
// Invalid text is rejected with a *sentiment.ValidationError and leaves the
// history unchanged. A generator outcome that fails sentiment.CheckOutcome
// is rejected too, wrapping sentiment.ErrInvalidOutcome.
func (s *Store) Record(text string) (sentiment.Record, error) {
	trimmed, err := sentiment.ValidateText(text)
	if err != nil {
		return sentiment.Record{}, err
	}

	label, scores := s.generator.Generate()
	if err := sentiment.CheckOutcome(label, scores); err != nil {
		s.logger.Warn("generator produced an invalid outcome", "error", err)
		return sentiment.Record{}, fmt.Errorf("failed to analyze text: %w", err)
	}

	now := s.clock.Now()
	if now.Before(s.lastStamp) {
		now = s.lastStamp
	}

	rec := sentiment.Record{
		ID:        uuid.New(),
		Text:      trimmed,
		Sentiment: label,
		Scores:    scores,
		Timestamp: now,
	}

	if err := s.backend.Append(rec); err != nil {
		return sentiment.Record{}, fmt.Errorf("failed to store analysis: %w", err)
	}
	s.lastStamp = now

	s.logger.Debug("analysis recorded",
		"id", rec.ID,
		"sentiment", rec.Sentiment,
		"chars", len(rec.Text))

	return rec, nil
}

// Clear empties the history. Clearing an empty history is a no-op.
func (s *Store) Clear() error {
	if err := s.backend.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.lastStamp = time.Time{}
	s.logger.Debug("history cleared")
	return nil
}

// Len returns the number of records.
func (s *Store) Len() (int, error) {
	n, err := s.backend.Len()
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Records returns every record in chronological order.
func (s *Store) Records() ([]sentiment.Record, error) {
	records, err := s.backend.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// Counts returns the number of records per label, all labels included.
func (s *Store) Counts() (analyzer.Counts, error) {
	if lc, ok := s.backend.(LabelCounter); ok {
		counts, err := lc.CountBySentiment()
		if err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
		return analyzer.Counts(counts), nil
	}

	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return analyzer.CountLabels(records), nil
}

// Percentages returns each label's share of the history. It returns
// analyzer.ErrEmptyHistory when there are no records.
func (s *Store) Percentages() (analyzer.Percentages, error) {
	counts, err := s.Counts()
	if err != nil {
		return nil, err
	}
	return analyzer.ComputePercentages(counts)
}

// Recent returns the last n records, most recent first.
func (s *Store) Recent(n int) ([]sentiment.Record, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return analyzer.Recent(records, n), nil
}

// HistoryReversed returns every record, most recent first.
func (s *Store) HistoryReversed() ([]sentiment.Record, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return analyzer.Reversed(records), nil
}

// TimeSeries returns every record in chronological order, projected to the
// fields trend charts use.
func (s *Store) TimeSeries() ([]analyzer.Point, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return analyzer.Project(records), nil
}
