package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/output"
)

const sidebarWidth = 30

const tipsText = `- Enter clear, complete sentences
- Minimum 10 characters recommended
- Supports multiple languages
- Results saved to history`

const aboutText = `Overview
  A real-time sentiment tracking dashboard. Every analysis is
  simulated locally: labels and confidence scores are random and
  nothing leaves this process or outlives it.

Sentiment Types
  😊 POSITIVE  positive emotions, satisfaction or approval
  😞 NEGATIVE  negative emotions, dissatisfaction or criticism
  😐 NEUTRAL   factual, objective or lacking emotional content
  🤔 MIXED     both positive and negative sentiments

Features
  - Single text and batch (.txt/.csv) analysis
  - Dashboard with counts, shares and full history
  - Sentiment timeline and confidence trends
  - Auto refresh every 1-10 seconds

Keys
  tab/shift+tab  switch tabs      ctrl+o  batch upload
  ctrl+l         language         ctrl+r  auto refresh
  + / -          refresh rate     ctrl+x  clear history
  ctrl+c         quit`

func (a *App) mainWidth() int {
	w := a.width - sidebarWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("senti")
	}

	header := headerStyle.Render("📊 Real-Time Sentiment Analysis Dashboard")
	tabs := a.renderTabs()
	status := a.renderStatusBar()

	bodyHeight := a.height - 3 - 2 // header, tabs, status bar, borders
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	sidebar := sidebarStyle.Width(sidebarWidth).Render(clip(a.renderSidebar(), bodyHeight))
	content := mainPaneStyle.Width(a.mainWidth()).Render(clip(a.renderTab(), bodyHeight))
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", content)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, status)
}

func (a *App) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == a.tab {
			parts[i] = tabActiveStyle.Render(name)
		} else {
			parts[i] = tabInactiveStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderTab() string {
	switch a.tab {
	case tabDashboard:
		return a.renderDashboard()
	case tabTrends:
		return a.renderTrends()
	case tabAbout:
		return sectionTitleStyle.Render("About This Application") + "\n\n" + aboutText
	default:
		return a.renderAnalyze()
	}
}

func (a *App) renderAnalyze() string {
	var sb strings.Builder

	sb.WriteString(sectionTitleStyle.Render("Text Sentiment Analysis") + "\n\n")

	if a.mode == modeUpload {
		sb.WriteString("Upload a text file or CSV\n")
		sb.WriteString(a.pathInput.View() + "\n")
		sb.WriteString(dimStyle.Render("enter analyze batch · esc cancel") + "\n\n")
	} else {
		sb.WriteString("Enter text to analyze:\n")
		sb.WriteString(a.input.View() + "\n")
		sb.WriteString(dimStyle.Render("enter analyze · esc clear · ctrl+o batch upload") + "\n\n")
	}

	switch {
	case a.analyzing:
		sb.WriteString(a.spinner.View() + " Analyzing sentiment...\n\n")
	case a.loading:
		sb.WriteString(a.spinner.View() + " Processing batch analysis...\n\n")
	}

	if a.warning != "" {
		sb.WriteString(warningStyle.Render(a.warning) + "\n\n")
	}
	if a.err != nil {
		sb.WriteString(errorStyle.Render(errText(a.err)) + "\n\n")
	}
	if a.status != "" {
		sb.WriteString(successStyle.Render(a.status) + "\n\n")
	}

	if a.last != nil {
		sb.WriteString(output.RenderResult(*a.last) + "\n")
	}
	if a.lastBatch != nil {
		sb.WriteString(output.RenderBatchResult(*a.lastBatch) + "\n")
	}

	recent, err := a.store.Recent(a.cfg.RecentWindow)
	if err != nil {
		sb.WriteString(errorStyle.Render(errText(err)) + "\n")
	} else {
		sb.WriteString(output.RenderRecent(recent, a.cfg.RecentExcerpt) + "\n")
	}

	sb.WriteString(sectionTitleStyle.Render("💡 Tips") + "\n")
	sb.WriteString(dimStyle.Render(tipsText) + "\n")

	return sb.String()
}

func (a *App) renderDashboard() string {
	summary, err := a.analyzer.GetSummary()
	if err != nil {
		return errorStyle.Render(errText(err))
	}
	records, err := a.store.HistoryReversed()
	if err != nil {
		return errorStyle.Render(errText(err))
	}
	return output.RenderDashboard(summary, records, a.cfg.HistoryExcerpt)
}

func (a *App) renderTrends() string {
	trends, err := a.analyzer.GetTrends()
	if errors.Is(err, analyzer.ErrNotEnoughData) {
		return output.RenderTrends(nil)
	}
	if err != nil {
		return errorStyle.Render(errText(err))
	}
	return output.RenderTrends(trends)
}

func (a *App) renderSidebar() string {
	var sb strings.Builder

	sb.WriteString(sectionTitleStyle.Render("⚙️ Configuration") + "\n\n")

	sb.WriteString(sectionTitleStyle.Render("Analysis Settings") + "\n")
	sb.WriteString(fmt.Sprintf("Language: %s\n", a.language))
	if a.autoRefresh {
		sb.WriteString("Auto Refresh: on\n")
		sb.WriteString(fmt.Sprintf("Refresh Rate: %ds\n", a.refreshRate))
	} else {
		sb.WriteString("Auto Refresh: off\n")
	}
	sb.WriteString("\n")

	total, err := a.store.Len()
	sb.WriteString(sectionTitleStyle.Render("Statistics") + "\n")
	if err != nil {
		sb.WriteString(errorStyle.Render("unavailable") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("Total Analyses: %d\n", total))
	}
	sb.WriteString("\n")

	if a.mode == modeConfirmClear {
		sb.WriteString(warningStyle.Render("Clear all history? (y/n)") + "\n")
	} else {
		sb.WriteString(dimStyle.Render("ctrl+x clear history") + "\n")
	}

	return sb.String()
}

func (a *App) renderStatusBar() string {
	total, _ := a.store.Len()
	left := fmt.Sprintf(" %d analyses · %s", total, a.language)
	if a.autoRefresh && !a.lastRefresh.IsZero() {
		left += " · refreshed " + a.lastRefresh.Format("15:04:05")
	}

	right := " tab switch  ctrl+l language  ctrl+r auto refresh  ctrl+c quit "
	if a.tab != tabAnalyze {
		right = " 1-4 tabs  +/- rate  ctrl+r auto refresh  q quit "
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(a.width).Render(bar)
}

// clip keeps the first n lines of s.
func clip(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
