// Package output renders analyses, dashboards and trends for the terminal.
//
// Renderers return strings and never write directly, so the same views back
// the one-shot commands, the watcher and the TUI. Colour is applied with
// lipgloss only when IsColorEnabled reports a terminal.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// IsColorEnabled returns true if colour codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

var labelColors = map[sentiment.Label]lipgloss.Color{
	sentiment.Positive: lipgloss.Color("#00cc00"),
	sentiment.Negative: lipgloss.Color("#ff0000"),
	sentiment.Neutral:  lipgloss.Color("#ffa500"),
	sentiment.Mixed:    lipgloss.Color("#9370db"),
}

var labelEmoji = map[sentiment.Label]string{
	sentiment.Positive: "😊",
	sentiment.Negative: "😞",
	sentiment.Neutral:  "😐",
	sentiment.Mixed:    "🤔",
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// LabelColor returns the display colour of a label.
func LabelColor(l sentiment.Label) lipgloss.Color {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return lipgloss.Color("#808080")
}

// Emoji returns the face shown next to a label.
func Emoji(l sentiment.Label) string {
	if e, ok := labelEmoji[l]; ok {
		return e
	}
	return "❔"
}

// Paint colours text with the label's colour when colour is enabled.
func Paint(l sentiment.Label, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return lipgloss.NewStyle().Foreground(LabelColor(l)).Render(text)
}

// Badge renders "😊 POSITIVE" in the label's colour.
func Badge(l sentiment.Label) string {
	text := fmt.Sprintf("%s %s", Emoji(l), l)
	if !IsColorEnabled() {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(LabelColor(l)).Render(text)
}

func heading(text string) string {
	if !IsColorEnabled() {
		return text + "\n" + strings.Repeat("─", len([]rune(text)))
	}
	return headingStyle.Render(text)
}

func muted(text string) string {
	if !IsColorEnabled() {
		return text
	}
	return mutedStyle.Render(text)
}

// bar draws a horizontal bar filled to frac of width.
func bar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline maps values in [0,1] to block characters.
func sparkline(values []float64) string {
	var sb strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range values {
		idx := int(v*float64(top) + 0.5)
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}
