// Package sentiment defines the sentiment labels, confidence scores and
// analysis records shared by the rest of senti, plus the simulated
// generator that stands in for a real inference model.
package sentiment

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Label is the simulated emotional tone of an analysed text.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
	Mixed    Label = "MIXED"
)

// Labels lists every label in display order. Tables, charts and counts
// iterate in this order.
var Labels = []Label{Positive, Negative, Neutral, Mixed}

// Title returns the label in title case ("Positive").
func (l Label) Title() string {
	s := string(l)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// Valid reports whether l is one of the four known labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral, Mixed:
		return true
	default:
		return false
	}
}

// ParseLabel converts a case-insensitive label name into a Label.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown sentiment label %q", s)
	}
	return l, nil
}

// Scores holds one confidence value per label. Generated scores lie in
// [0,1] and sum to 1.
type Scores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Mixed    float64
}

// Get returns the score for a label, or 0 for an unknown label.
func (s Scores) Get(l Label) float64 {
	switch l {
	case Positive:
		return s.Positive
	case Negative:
		return s.Negative
	case Neutral:
		return s.Neutral
	case Mixed:
		return s.Mixed
	default:
		return 0
	}
}

// Sum returns the total of the four scores.
func (s Scores) Sum() float64 {
	return s.Positive + s.Negative + s.Neutral + s.Mixed
}

// Top returns the highest scoring label. Ties go to the label that comes
// first in Labels.
func (s Scores) Top() Label {
	best := Labels[0]
	for _, l := range Labels[1:] {
		if s.Get(l) > s.Get(best) {
			best = l
		}
	}
	return best
}

// Normalize divides each score by the total so the result sums to 1.
// A zero total is returned unchanged.
func Normalize(raw Scores) Scores {
	total := raw.Sum()
	if total == 0 {
		return raw
	}
	return Scores{
		Positive: raw.Positive / total,
		Negative: raw.Negative / total,
		Neutral:  raw.Neutral / total,
		Mixed:    raw.Mixed / total,
	}
}

// ScoreTolerance is how far a score total may drift from 1.
const ScoreTolerance = 1e-9

// ErrInvalidOutcome is returned for a generated label or score set that
// breaks the Label and Scores contract.
var ErrInvalidOutcome = errors.New("invalid analysis outcome")

// CheckOutcome reports whether a generated label and scores can be
// recorded: a known label, every score in [0,1] and a total of 1.
func CheckOutcome(l Label, s Scores) error {
	if !l.Valid() {
		return fmt.Errorf("%w: unknown label %q", ErrInvalidOutcome, l)
	}
	for _, label := range Labels {
		if v := s.Get(label); v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s score %v outside [0,1]", ErrInvalidOutcome, label, v)
		}
	}
	if sum := s.Sum(); math.Abs(sum-1) > ScoreTolerance {
		return fmt.Errorf("%w: scores sum to %v", ErrInvalidOutcome, sum)
	}
	return nil
}

// Record is one analysed text.
type Record struct {
	ID        uuid.UUID
	Text      string
	Sentiment Label
	Scores    Scores
	Timestamp time.Time
}
