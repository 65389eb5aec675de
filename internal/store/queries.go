package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// Append inserts an analysis at the end of the history.
func (s *Store) Append(rec sentiment.Record) error {
	query := `
		INSERT INTO analyses
		(id, text, sentiment, score_positive, score_negative, score_neutral, score_mixed, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		rec.ID.String(),
		rec.Text,
		string(rec.Sentiment),
		rec.Scores.Positive,
		rec.Scores.Negative,
		rec.Scores.Neutral,
		rec.Scores.Mixed,
		rec.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return wrapErr(err, "failed to insert analysis %s", rec.ID)
	}

	return nil
}

// All returns every analysis in insertion order.
func (s *Store) All() ([]sentiment.Record, error) {
	query := `
		SELECT id, text, sentiment, score_positive, score_negative, score_neutral, score_mixed, timestamp
		FROM analyses
		ORDER BY seq
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapErr(err, "failed to list analyses")
	}
	defer rows.Close()

	records := []sentiment.Record{}
	for rows.Next() {
		var rec sentiment.Record
		var id, label, timestamp string

		err := rows.Scan(
			&id,
			&rec.Text,
			&label,
			&rec.Scores.Positive,
			&rec.Scores.Negative,
			&rec.Scores.Neutral,
			&rec.Scores.Mixed,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}

		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse id %q: %w", id, err)
		}

		rec.Sentiment, err = sentiment.ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sentiment for %s: %w", id, err)
		}

		rec.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for %s: %w", id, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return records, nil
}

// Len returns the number of analyses.
func (s *Store) Len() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&count); err != nil {
		return 0, wrapErr(err, "failed to count analyses")
	}
	return count, nil
}

// Clear deletes every analysis.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM analyses"); err != nil {
		return wrapErr(err, "failed to clear analyses")
	}
	return nil
}

// CountBySentiment returns the number of analyses per label as computed by
// SQL. Labels with no analyses are included with a count of zero.
func (s *Store) CountBySentiment() (map[sentiment.Label]int, error) {
	counts := make(map[sentiment.Label]int, len(sentiment.Labels))
	for _, l := range sentiment.Labels {
		counts[l] = 0
	}

	rows, err := s.db.Query("SELECT sentiment, COUNT(*) FROM analyses GROUP BY sentiment")
	if err != nil {
		return nil, wrapErr(err, "failed to count analyses by sentiment")
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment count: %w", err)
		}
		l, err := sentiment.ParseLabel(label)
		if err != nil {
			return nil, err
		}
		counts[l] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment counts: %w", err)
	}

	return counts, nil
}
