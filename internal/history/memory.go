package history

import "github.com/tharanidharane77-prog/senti/internal/sentiment"

// MemoryBackend keeps records in a slice.
type MemoryBackend struct {
	records []sentiment.Record
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Append adds rec after the existing records.
func (b *MemoryBackend) Append(rec sentiment.Record) error {
	b.records = append(b.records, rec)
	return nil
}

// All returns a copy so callers cannot reorder the history.
func (b *MemoryBackend) All() ([]sentiment.Record, error) {
	out := make([]sentiment.Record, len(b.records))
	copy(out, b.records)
	return out, nil
}

// Len returns the number of records.
func (b *MemoryBackend) Len() (int, error) {
	return len(b.records), nil
}

// Clear drops every record.
func (b *MemoryBackend) Clear() error {
	b.records = nil
	return nil
}
