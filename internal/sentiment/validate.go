package sentiment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters, after trimming, an
// analysed text must have.
const MinTextLength = 10

var (
	// ErrEmptyText is returned for blank input.
	ErrEmptyText = errors.New("please enter some text to analyze")
	// ErrTextTooShort is returned for input under MinTextLength characters.
	ErrTextTooShort = fmt.Errorf("please enter at least %d characters", MinTextLength)
)

// ValidationError describes rejected input. It unwraps to ErrEmptyText or
// ErrTextTooShort.
type ValidationError struct {
	Length int
	Err    error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrTextTooShort) {
		return fmt.Sprintf("%v (got %d)", e.Err, e.Length)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateText trims text and checks it is long enough to analyse. It
// returns the trimmed text.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Err: ErrEmptyText}
	}
	n := utf8.RuneCountInString(trimmed)
	if n < MinTextLength {
		return "", &ValidationError{Length: n, Err: ErrTextTooShort}
	}
	return trimmed, nil
}
