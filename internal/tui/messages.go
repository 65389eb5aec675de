package tui

import "time"

// analysisDoneMsg fires when the simulated service call has "returned".
type analysisDoneMsg struct {
	text string
}

// batchLoadedMsg carries the texts read from an uploaded file.
type batchLoadedMsg struct {
	path  string
	texts []string
	err   error
}

// refreshTickMsg drives auto refresh. Ticks from an older schedule carry a
// stale gen and are dropped.
type refreshTickMsg struct {
	gen int
	at  time.Time
}
