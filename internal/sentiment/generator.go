package sentiment

import (
	"fmt"
	"math/rand"
	"sync"
)

// Generator produces a simulated analysis outcome. The label and the
// scores are drawn independently, so the label need not be the top score.
type Generator interface {
	Generate() (Label, Scores)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func() (Label, Scores)

// Generate calls f.
func (f GeneratorFunc) Generate() (Label, Scores) {
	return f()
}

// RandomGenerator draws a uniform label and four uniform scores that are
// normalised to sum to 1.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator creates a generator over the given source.
func NewRandomGenerator(src rand.Source) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(src)}
}

// NewSeededGenerator is shorthand for NewRandomGenerator(rand.NewSource(seed)).
func NewSeededGenerator(seed int64) *RandomGenerator {
	return NewRandomGenerator(rand.NewSource(seed))
}

// Generate implements Generator.
func (g *RandomGenerator) Generate() (Label, Scores) {
	g.mu.Lock()
	defer g.mu.Unlock()

	label := Labels[g.rng.Intn(len(Labels))]

	for {
		raw := Scores{
			Positive: g.rng.Float64(),
			Negative: g.rng.Float64(),
			Neutral:  g.rng.Float64(),
			Mixed:    g.rng.Float64(),
		}
		// All four draws at exactly 0 cannot be normalised.
		if raw.Sum() > 0 {
			return label, Normalize(raw)
		}
	}
}

// Outcome is a fixed generator result.
type Outcome struct {
	Label  Label
	Scores Scores
}

// SequenceGenerator replays a fixed list of outcomes in order, wrapping
// around at the end. Scores are normalised when the generator is built.
type SequenceGenerator struct {
	outcomes []Outcome
	next     int
}

// NewSequenceGenerator creates a generator that replays outcomes. It panics
// when called with no outcomes, or with an outcome whose normalised scores
// fail CheckOutcome (an unknown label, a negative score or all zeros).
func NewSequenceGenerator(outcomes ...Outcome) *SequenceGenerator {
	if len(outcomes) == 0 {
		panic("sentiment: NewSequenceGenerator needs at least one outcome")
	}
	normalized := make([]Outcome, len(outcomes))
	for i, o := range outcomes {
		o.Scores = Normalize(o.Scores)
		if err := CheckOutcome(o.Label, o.Scores); err != nil {
			panic(fmt.Sprintf("sentiment: outcome %d: %v", i+1, err))
		}
		normalized[i] = o
	}
	return &SequenceGenerator{outcomes: normalized}
}

// Generate implements Generator.
func (g *SequenceGenerator) Generate() (Label, Scores) {
	o := g.outcomes[g.next%len(g.outcomes)]
	g.next++
	return o.Label, o.Scores
}
