package batch

import (
	"errors"
	"fmt"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// Recorder records one text. *history.Store satisfies it.
type Recorder interface {
	Record(text string) (sentiment.Record, error)
}

// Skipped is a text that failed validation.
type Skipped struct {
	Index  int // 1-based position in the input
	Text   string
	Reason error
}

// Result summarises a batch run.
type Result struct {
	Recorded []sentiment.Record
	Skipped  []Skipped
}

// Total returns the number of texts processed.
func (r Result) Total() int {
	return len(r.Recorded) + len(r.Skipped)
}

// Analyze records every text in order. Texts rejected by validation are
// skipped and reported; any other error stops the run and is returned with
// the partial result. onEach, if non-nil, is called after each text.
func Analyze(rec Recorder, texts []string, onEach func()) (Result, error) {
	var res Result

	for i, text := range texts {
		r, err := rec.Record(text)
		if err != nil {
			var verr *sentiment.ValidationError
			if !errors.As(err, &verr) {
				return res, fmt.Errorf("failed to analyze text %d: %w", i+1, err)
			}
			res.Skipped = append(res.Skipped, Skipped{Index: i + 1, Text: text, Reason: err})
		} else {
			res.Recorded = append(res.Recorded, r)
		}

		if onEach != nil {
			onEach()
		}
	}

	return res, nil
}
