package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tharanidharane77-prog/senti/internal/config"
	"github.com/tharanidharane77-prog/senti/internal/history"
	"github.com/tharanidharane77-prog/senti/internal/output"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

func newTestApp(t *testing.T) (*App, *history.Store) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	st := history.New(
		history.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		history.WithGenerator(sentiment.NewSequenceGenerator(
			sentiment.Outcome{Label: sentiment.Positive, Scores: sentiment.Scores{Positive: 3, Negative: 1}},
			sentiment.Outcome{Label: sentiment.Negative, Scores: sentiment.Scores{Negative: 1, Neutral: 1}},
		)),
	)
	a := NewApp(RunOpts{Cfg: config.Default(), Store: st})
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	return a, st
}

func typeText(a *App, text string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func key(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func storeLen(t *testing.T, st *history.Store) int {
	t.Helper()
	n, err := st.Len()
	if err != nil {
		t.Fatalf("Len() error: %v", err)
	}
	return n
}

func TestAnalyze_RecordsAfterDelay(t *testing.T) {
	a, st := newTestApp(t)

	typeText(a, "this service is wonderful")
	cmd := key(a, tea.KeyEnter)

	if !a.analyzing {
		t.Fatal("enter should start the simulated analysis")
	}
	if cmd == nil {
		t.Fatal("enter should schedule the analysis")
	}
	if n := storeLen(t, st); n != 0 {
		t.Fatalf("nothing should be recorded before the delay, got %d", n)
	}

	a.Update(analysisDoneMsg{text: "this service is wonderful"})

	if a.analyzing {
		t.Error("analyzing should be reset")
	}
	if n := storeLen(t, st); n != 1 {
		t.Fatalf("Len() = %d, want 1", n)
	}
	if a.last == nil || a.last.Sentiment != sentiment.Positive {
		t.Errorf("last = %+v, want POSITIVE record", a.last)
	}
	if a.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", a.input.Value())
	}

	view := a.View()
	for _, expected := range []string{"Analysis Complete", "😊 POSITIVE", "75.0%", "Recent Analyses", "Total Analyses: 1"} {
		if !strings.Contains(view, expected) {
			t.Errorf("View() missing %q", expected)
		}
	}
}

func TestAnalyze_KeepsTextTypedDuringDelay(t *testing.T) {
	a, st := newTestApp(t)

	typeText(a, "the first text to analyze")
	key(a, tea.KeyEnter)

	a.input.SetValue("the next text being typed")
	a.Update(analysisDoneMsg{text: "the first text to analyze"})

	if n := storeLen(t, st); n != 1 {
		t.Fatalf("Len() = %d, want 1", n)
	}
	if a.input.Value() != "the next text being typed" {
		t.Errorf("input = %q, text typed during the delay was lost", a.input.Value())
	}
}

func TestAnalyze_ShortTextWarns(t *testing.T) {
	a, st := newTestApp(t)

	typeText(a, "too short")
	cmd := key(a, tea.KeyEnter)

	if cmd != nil || a.analyzing {
		t.Error("short text must not start an analysis")
	}
	if !strings.Contains(a.warning, "at least 10 characters") {
		t.Errorf("warning = %q", a.warning)
	}
	if n := storeLen(t, st); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestAnalyze_EmptyTextWarns(t *testing.T) {
	a, _ := newTestApp(t)

	key(a, tea.KeyEnter)
	if !strings.Contains(a.warning, "Please enter some text") {
		t.Errorf("warning = %q", a.warning)
	}
}

func TestAnalyze_QTypesInsteadOfQuitting(t *testing.T) {
	a, _ := newTestApp(t)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if a.input.Value() != "q" {
		t.Errorf("input = %q, want q", a.input.Value())
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q on the Analyze tab should not quit")
		}
	}
}

func TestTabs(t *testing.T) {
	a, _ := newTestApp(t)

	key(a, tea.KeyTab)
	if a.tab != tabDashboard {
		t.Fatalf("tab = %d, want dashboard", a.tab)
	}
	if !strings.Contains(a.View(), output.EmptyDashboardMessage) {
		t.Error("empty dashboard should show the empty state")
	}

	key(a, tea.KeyTab)
	if !strings.Contains(a.View(), output.EmptyTrendsMessage) {
		t.Error("trends with no data should show the empty state")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	if a.tab != tabAbout {
		t.Errorf("tab = %d, want about", a.tab)
	}

	key(a, tea.KeyShiftTab)
	if a.tab != tabTrends {
		t.Errorf("tab = %d, want trends", a.tab)
	}

	key(a, tea.KeyTab)
	key(a, tea.KeyTab)
	if a.tab != tabAnalyze {
		t.Errorf("tab should wrap around to analyze, got %d", a.tab)
	}
}

func TestDashboardAndTrendsWithData(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(analysisDoneMsg{text: "the first analysed text"})
	a.Update(analysisDoneMsg{text: "the second analysed text"})

	a.tab = tabDashboard
	view := a.View()
	for _, expected := range []string{"Sentiment Overview", "Total analyses: 2", "Analysis History", "the second analysed text"} {
		if !strings.Contains(view, expected) {
			t.Errorf("dashboard missing %q", expected)
		}
	}

	a.tab = tabTrends
	view = a.View()
	for _, expected := range []string{"Sentiment Timeline", "Confidence Scores Over Time"} {
		if !strings.Contains(view, expected) {
			t.Errorf("trends missing %q", expected)
		}
	}
}

func TestClearHistory(t *testing.T) {
	a, st := newTestApp(t)
	a.Update(analysisDoneMsg{text: "something to forget"})

	key(a, tea.KeyCtrlX)
	if a.mode != modeConfirmClear {
		t.Fatal("ctrl+x should ask for confirmation")
	}
	if !strings.Contains(a.View(), "Clear all history? (y/n)") {
		t.Error("confirmation prompt not shown")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if n := storeLen(t, st); n != 1 {
		t.Fatalf("declining must keep history, Len() = %d", n)
	}

	key(a, tea.KeyCtrlX)
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if n := storeLen(t, st); n != 0 {
		t.Errorf("Len() after clear = %d, want 0", n)
	}
	if a.last != nil {
		t.Error("last result should be dropped with the history")
	}
	if a.mode != modeNormal {
		t.Error("mode should return to normal")
	}
}

func TestLanguageCycle(t *testing.T) {
	a, _ := newTestApp(t)

	want := []string{"Spanish", "French", "German", "Italian", "English"}
	for _, lang := range want {
		key(a, tea.KeyCtrlL)
		if a.language != lang {
			t.Fatalf("language = %q, want %q", a.language, lang)
		}
	}
}

func TestAutoRefresh(t *testing.T) {
	a, _ := newTestApp(t)

	if cmd := key(a, tea.KeyCtrlR); cmd == nil || !a.autoRefresh {
		t.Fatal("ctrl+r should enable auto refresh and schedule a tick")
	}
	if !strings.Contains(a.View(), "Refresh Rate: 3s") {
		t.Error("sidebar should show the refresh rate")
	}

	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	if _, cmd := a.Update(refreshTickMsg{gen: a.refreshGen - 1, at: at}); cmd != nil {
		t.Error("stale tick should be dropped")
	}
	if _, cmd := a.Update(refreshTickMsg{gen: a.refreshGen, at: at}); cmd == nil {
		t.Error("current tick should reschedule")
	}
	if !a.lastRefresh.Equal(at) {
		t.Errorf("lastRefresh = %v, want %v", a.lastRefresh, at)
	}

	key(a, tea.KeyCtrlR)
	if a.autoRefresh {
		t.Error("second ctrl+r should disable auto refresh")
	}
	if _, cmd := a.Update(refreshTickMsg{gen: a.refreshGen, at: at}); cmd != nil {
		t.Error("ticks must stop once auto refresh is off")
	}
}

func TestRefreshRateBounds(t *testing.T) {
	a, _ := newTestApp(t)
	a.tab = tabDashboard

	for i := 0; i < 20; i++ {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	}
	if a.refreshRate != config.MaxRefreshRate {
		t.Errorf("refreshRate = %d, want %d", a.refreshRate, config.MaxRefreshRate)
	}

	for i := 0; i < 20; i++ {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	}
	if a.refreshRate != config.MinRefreshRate {
		t.Errorf("refreshRate = %d, want %d", a.refreshRate, config.MinRefreshRate)
	}
}

func TestBatchUpload(t *testing.T) {
	a, st := newTestApp(t)

	path := filepath.Join(t.TempDir(), "reviews.txt")
	if err := os.WriteFile(path, []byte("the first uploaded review\nshort\nthe second uploaded review\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	key(a, tea.KeyCtrlO)
	if a.mode != modeUpload {
		t.Fatal("ctrl+o should open the upload prompt")
	}
	typeText(a, path)
	if cmd := key(a, tea.KeyEnter); cmd == nil || !a.loading {
		t.Fatal("enter should start loading the file")
	}
	if a.mode != modeNormal {
		t.Error("upload prompt should close")
	}

	msg := loadFileCmd(path)()
	a.Update(msg)

	if n := storeLen(t, st); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
	if a.lastBatch == nil || len(a.lastBatch.Skipped) != 1 {
		t.Errorf("lastBatch = %+v, want one skipped text", a.lastBatch)
	}
	if !strings.Contains(a.View(), "Analyzed 2 of 3 texts") {
		t.Error("batch summary not shown")
	}
	if !strings.Contains(a.status, "reviews.txt") {
		t.Errorf("status = %q, want the uploaded file name", a.status)
	}
}

func TestBatchUpload_BadFile(t *testing.T) {
	a, st := newTestApp(t)

	a.Update(loadFileCmd(filepath.Join(t.TempDir(), "missing.csv"))())

	if a.err == nil {
		t.Error("missing file should set an error")
	}
	if n := storeLen(t, st); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestCtrlCQuits(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := key(a, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
