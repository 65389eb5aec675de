// Package tui is the interactive dashboard: an Analyze tab with a text
// input and recent analyses, a Dashboard with metrics and history, a
// Trends tab and an About page, plus a settings sidebar.
//
// All history mutations happen inside Update, so the bubbletea event loop
// is the store's only owner. Commands that leave the loop (file reads,
// timers) report back with messages.
package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/batch"
	"github.com/tharanidharane77-prog/senti/internal/config"
	"github.com/tharanidharane77-prog/senti/internal/history"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
)

// AnalyzeDelay is the simulated latency of one analysis.
const AnalyzeDelay = 500 * time.Millisecond

type tab int

const (
	tabAnalyze tab = iota
	tabDashboard
	tabTrends
	tabAbout
)

var tabNames = []string{"📝 Analyze Text", "📊 Dashboard", "📈 Trends", "ℹ️ About"}

type mode int

const (
	modeNormal mode = iota
	modeUpload
	modeConfirmClear
)

// App is the bubbletea model for the dashboard. It owns the history store
// for as long as the program runs.
type App struct {
	cfg      *config.Config
	store    *history.Store
	analyzer *analyzer.Analyzer

	tab  tab
	mode mode

	width  int
	height int

	// Sub-components
	input     textinput.Model
	pathInput textinput.Model
	spinner   spinner.Model

	// Settings
	language    string
	autoRefresh bool
	refreshRate int
	refreshGen  int
	lastRefresh time.Time

	// State
	analyzeDelay time.Duration
	analyzing    bool
	loading      bool
	last         *sentiment.Record
	lastBatch    *batch.Result
	status       string
	warning      string
	err          error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg   *config.Config
	Store *history.Store
}

// NewApp builds the model with the settings from opts.Cfg (defaults when
// nil). opts.Store must not be nil.
func NewApp(opts RunOpts) *App {
	cfg := opts.Cfg
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Type or paste your text here..."
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 5000
	ti.Focus()

	pi := textinput.New()
	pi.Placeholder = "path/to/file.txt or .csv"
	pi.Prompt = promptStyle.Render("file: ")
	pi.CharLimit = 1024

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          cfg,
		store:        opts.Store,
		analyzer:     analyzer.New(opts.Store),
		input:        ti,
		pathInput:    pi,
		spinner:      sp,
		language:     cfg.Language,
		autoRefresh:  cfg.AutoRefresh,
		refreshRate:  cfg.RefreshRate,
		analyzeDelay: AnalyzeDelay,
	}
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(opts RunOpts) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if a.autoRefresh {
		cmds = append(cmds, a.scheduleRefresh())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, a.mainWidth()-8)
		a.pathInput.Width = max(10, a.mainWidth()-12)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case analysisDoneMsg:
		a.analyzing = false
		rec, err := a.store.Record(msg.text)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.last = &rec
		// Keep anything typed while the analysis was running.
		if a.input.Value() == msg.text {
			a.input.Reset()
		}
		a.status = "✅ Analysis Complete!"
		return a, nil

	case batchLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		res, err := batch.Analyze(a.store, msg.texts, nil)
		a.lastBatch = &res
		if err != nil {
			a.err = err
			return a, nil
		}
		a.status = fmt.Sprintf("✅ Batch analysis of %s complete! Check the Dashboard tab for results.", filepath.Base(msg.path))
		return a, nil

	case refreshTickMsg:
		if !a.autoRefresh || msg.gen != a.refreshGen {
			return a, nil
		}
		a.lastRefresh = msg.at
		return a, a.scheduleRefresh()

	case spinner.TickMsg:
		if a.analyzing || a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	switch a.mode {
	case modeConfirmClear:
		return a.handleConfirmKey(msg)
	case modeUpload:
		return a.handleUploadKey(msg)
	}

	switch msg.String() {
	case "tab":
		a.tab = (a.tab + 1) % tab(len(tabNames))
		return a, nil
	case "shift+tab":
		a.tab = (a.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return a, nil
	case "ctrl+l":
		a.cycleLanguage()
		return a, nil
	case "ctrl+r":
		return a, a.toggleAutoRefresh()
	case "ctrl+x":
		a.mode = modeConfirmClear
		return a, nil
	case "ctrl+o":
		a.tab = tabAnalyze
		a.mode = modeUpload
		a.input.Blur()
		a.pathInput.Focus()
		return a, textinput.Blink
	}

	if a.tab == tabAnalyze {
		return a.handleAnalyzeKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1", "2", "3", "4":
		a.tab = tab(msg.String()[0] - '1')
		return a, nil
	case "+", "=":
		return a, a.setRefreshRate(a.refreshRate + 1)
	case "-":
		return a, a.setRefreshRate(a.refreshRate - 1)
	}
	return a, nil
}

func (a *App) handleAnalyzeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a.analyzing {
			return a, nil
		}
		text := a.input.Value()
		if _, err := sentiment.ValidateText(text); err != nil {
			a.warning = "⚠️ " + capitalize(err.Error())
			return a, nil
		}
		a.warning = ""
		a.err = nil
		a.status = ""
		a.analyzing = true
		return a, tea.Batch(a.spinner.Tick, analyzeCmd(text, a.analyzeDelay))
	case "esc":
		a.input.Reset()
		a.warning = ""
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.leaveUpload()
		return a, nil
	case "enter":
		path := a.pathInput.Value()
		a.leaveUpload()
		if path == "" {
			return a, nil
		}
		a.err = nil
		a.status = ""
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, loadFileCmd(path))
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}

func (a *App) leaveUpload() {
	a.mode = modeNormal
	a.pathInput.Reset()
	a.pathInput.Blur()
	a.input.Focus()
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		a.mode = modeNormal
		if err := a.store.Clear(); err != nil {
			a.err = err
			return a, nil
		}
		a.last = nil
		a.lastBatch = nil
		a.status = "History cleared"
	case "n", "N", "esc":
		a.mode = modeNormal
	}
	return a, nil
}

func (a *App) cycleLanguage() {
	idx := slices.Index(config.Languages, a.language)
	a.language = config.Languages[(idx+1)%len(config.Languages)]
}

func (a *App) toggleAutoRefresh() tea.Cmd {
	a.autoRefresh = !a.autoRefresh
	a.refreshGen++
	if !a.autoRefresh {
		return nil
	}
	return a.scheduleRefresh()
}

func (a *App) setRefreshRate(rate int) tea.Cmd {
	if rate < config.MinRefreshRate || rate > config.MaxRefreshRate {
		return nil
	}
	a.refreshRate = rate
	a.refreshGen++
	if !a.autoRefresh {
		return nil
	}
	return a.scheduleRefresh()
}

func (a *App) scheduleRefresh() tea.Cmd {
	gen := a.refreshGen
	return tea.Tick(time.Duration(a.refreshRate)*time.Second, func(t time.Time) tea.Msg {
		return refreshTickMsg{gen: gen, at: t}
	})
}

func analyzeCmd(text string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return analysisDoneMsg{text: text}
	})
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		texts, err := batch.ParseFile(path)
		return batchLoadedMsg{path: path, texts: texts, err: err}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// errText renders an error for the status line, dropping the wrapping
// noise of validation errors.
func errText(err error) string {
	var verr *sentiment.ValidationError
	if errors.As(err, &verr) {
		return capitalize(verr.Error())
	}
	return "Error: " + err.Error()
}
