package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/batch"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// Empty-state messages.
const (
	EmptyDashboardMessage = "No data yet. Start by analyzing some text in the Analyze tab!"
	EmptyTrendsMessage    = "Need at least 2 analyses to show trends. Keep analyzing!"
	EmptyRecentMessage    = "No analyses yet."
)

const (
	scoreBarWidth = 20
	distBarWidth  = 30
	timelineWidth = 24
	maxSparkline  = 60
	timestampFmt  = "2006-01-02 15:04:05"
)

// RenderResult renders one analysis: the label and a confidence card per
// label with its percentage and a bar.
func RenderResult(rec sentiment.Record) string {
	var sb strings.Builder

	sb.WriteString("Sentiment: " + Badge(rec.Sentiment) + "\n\n")
	sb.WriteString("Confidence Scores\n")
	for _, l := range sentiment.Labels {
		score := rec.Scores.Get(l)
		sb.WriteString(fmt.Sprintf("  %-10s %5.1f%%  %s\n",
			l.Title(),
			score*100,
			Paint(l, bar(score, scoreBarWidth))))
	}

	return sb.String()
}

// RenderRecent renders records (newest first) as short cards with a
// relative timestamp.
func RenderRecent(records []sentiment.Record, excerptLen int) string {
	if len(records) == 0 {
		return EmptyRecentMessage + "\n"
	}

	var sb strings.Builder
	sb.WriteString("Recent Analyses\n")
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", Badge(rec.Sentiment), muted(humanize.Time(rec.Timestamp))))
		sb.WriteString(fmt.Sprintf("    %s\n", analyzer.Excerpt(rec.Text, excerptLen)))
	}

	return sb.String()
}

// RenderMetrics renders one card per label: count and share.
func RenderMetrics(s analyzer.Summary) string {
	var sb strings.Builder

	for _, l := range sentiment.Labels {
		sb.WriteString(fmt.Sprintf("  %s %s %4d  (%5.1f%%)\n",
			Emoji(l),
			Paint(l, fmt.Sprintf("%-9s", l.Title())),
			s.Counts[l],
			s.Percentages[l]))
	}
	sb.WriteString(fmt.Sprintf("  Total analyses: %d\n", s.Total))

	return sb.String()
}

// RenderDistribution renders the label counts as a bar chart scaled to the
// largest count.
func RenderDistribution(counts analyzer.Counts) string {
	most := 0
	for _, n := range counts {
		if n > most {
			most = n
		}
	}

	var sb strings.Builder
	for _, l := range sentiment.Labels {
		frac := 0.0
		if most > 0 {
			frac = float64(counts[l]) / float64(most)
		}
		sb.WriteString(fmt.Sprintf("  %-9s %s %d\n",
			l.Title(),
			Paint(l, bar(frac, distBarWidth)),
			counts[l]))
	}

	return sb.String()
}

// RenderHistoryTable renders records in the order given; callers pass them
// newest first.
func RenderHistoryTable(records []sentiment.Record, excerptLen int) string {
	if len(records) == 0 {
		return EmptyDashboardMessage + "\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-19s  %-11s  %s\n", "Timestamp", "Sentiment", "Text"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("%-19s  %s  %s\n",
			rec.Timestamp.Format(timestampFmt),
			Paint(rec.Sentiment, fmt.Sprintf("%-11s", rec.Sentiment)),
			analyzer.Excerpt(rec.Text, excerptLen)))
	}

	return sb.String()
}

// RenderDashboard renders the metric cards, the distribution chart and the
// history table, or the empty state when nothing has been analysed.
func RenderDashboard(s analyzer.Summary, newestFirst []sentiment.Record, excerptLen int) string {
	if s.Total == 0 {
		return EmptyDashboardMessage + "\n"
	}

	var sb strings.Builder

	sb.WriteString(heading("Sentiment Overview") + "\n")
	sb.WriteString(RenderMetrics(s))
	sb.WriteString(fmt.Sprintf("  Dominant: %s\n", Badge(s.Dominant)))
	means := make([]string, len(sentiment.Labels))
	for i, l := range sentiment.Labels {
		means[i] = fmt.Sprintf("%s %.1f%%", l.Title(), s.MeanScores.Get(l)*100)
	}
	sb.WriteString("  Mean confidence: " + strings.Join(means, ", ") + "\n")
	sb.WriteString(fmt.Sprintf("  Span: %s to %s\n", s.First.Format(timestampFmt), s.Last.Format(timestampFmt)))
	sb.WriteString("\n")

	sb.WriteString(heading("Sentiment Distribution") + "\n")
	sb.WriteString(RenderDistribution(s.Counts))
	sb.WriteString("\n")

	sb.WriteString(heading("Analysis History") + "\n")
	sb.WriteString(RenderHistoryTable(newestFirst, excerptLen))

	return sb.String()
}

// RenderTrends renders the sentiment timeline and the confidence series.
// A nil Trends renders the empty state.
func RenderTrends(t *analyzer.Trends) string {
	if t == nil || len(t.Timeline) < analyzer.MinTrendPoints {
		return EmptyTrendsMessage + "\n"
	}

	var sb strings.Builder

	sb.WriteString(heading("Sentiment Timeline") + "\n")
	for _, p := range t.Timeline {
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
			p.Timestamp.Format("15:04:05"),
			Paint(p.Label, bar(p.Value/analyzer.Ordinal(sentiment.Positive), timelineWidth)),
			Badge(p.Label)))
	}
	sb.WriteString("\n")

	sb.WriteString(heading("Confidence Scores Over Time") + "\n")
	for _, l := range sentiment.Labels {
		series := t.Confidence[l]
		if len(series) > maxSparkline {
			series = series[len(series)-maxSparkline:]
		}
		values := make([]float64, len(series))
		sum := 0.0
		for i, p := range series {
			values[i] = p.Value
			sum += p.Value
		}
		avg := 0.0
		if len(values) > 0 {
			avg = sum / float64(len(values))
		}
		sb.WriteString(fmt.Sprintf("  %-9s %s  avg %5.1f%%\n",
			l.Title(),
			Paint(l, sparkline(values)),
			avg*100))
	}

	return sb.String()
}

// RenderBatchResult summarises a batch run and lists skipped texts.
func RenderBatchResult(res batch.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyzed %d of %d texts", len(res.Recorded), res.Total()))
	if len(res.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d skipped)", len(res.Skipped)))
	}
	sb.WriteString("\n")

	for _, sk := range res.Skipped {
		sb.WriteString(fmt.Sprintf("  #%d %q: %v\n", sk.Index, analyzer.Excerpt(sk.Text, 30), sk.Reason))
	}

	return sb.String()
}
