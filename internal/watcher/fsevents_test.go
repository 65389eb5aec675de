package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dropFile writes content under a hidden temporary name and renames it into
// place so the watcher only ever sees the complete file.
func dropFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	tmp := filepath.Join(dir, "."+name+".part")
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	return path
}

func startWatcher(t *testing.T, dir string, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	w, err := New(dir, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w
}

func waitBatch(t *testing.T, w *Watcher, tick func()) Batch {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-w.Batches():
			return b
		case <-deadline:
			t.Fatal("timed out waiting for batch")
		case <-time.After(20 * time.Millisecond):
			if tick != nil {
				tick()
			}
		}
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("New() with missing dir expected error, got nil")
	}
}

func TestNew_NotADir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Error("New() with a file expected error, got nil")
	}
}

func TestAccepts(t *testing.T) {
	w, err := New(t.TempDir(), WithExtensions("TXT", ".csv"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/reviews.txt", true},
		{"/inbox/REVIEWS.TXT", true},
		{"/inbox/reviews.csv", true},
		{"/inbox/reviews.md", false},
		{"/inbox/.reviews.txt", false},
		{"/inbox/reviews", false},
	}
	for _, tt := range tests {
		if got := w.accepts(tt.path); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_DeliversNewFile(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, WithDebounce(0))

	path := dropFile(t, dir, "reviews.txt", "the product is great\nshipping was slow\n")

	b := waitBatch(t, w, nil)
	if b.Path != path {
		t.Errorf("Path = %q, want %q", b.Path, path)
	}
	if b.Err != nil {
		t.Fatalf("Err = %v", b.Err)
	}
	if len(b.Texts) != 2 || b.Texts[0] != "the product is great" {
		t.Errorf("Texts = %q", b.Texts)
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, WithDebounce(0))

	dropFile(t, dir, "notes.md", "not for analysis at all\n")
	dropFile(t, dir, "reviews.csv", "text\nfrom the csv inbox\n")

	b := waitBatch(t, w, nil)
	if filepath.Base(b.Path) != "reviews.csv" {
		t.Errorf("got batch for %q, want reviews.csv", b.Path)
	}
}

func TestWatcher_DebounceWaitsForClock(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClock()
	w := startWatcher(t, dir, WithDebounce(time.Second), WithClock(clock))

	dropFile(t, dir, "late.txt", "arrives after the quiet period\n")

	// Nothing is delivered while the clock stands still.
	select {
	case b := <-w.Batches():
		t.Fatalf("batch delivered before debounce elapsed: %+v", b)
	case <-time.After(200 * time.Millisecond):
	}

	b := waitBatch(t, w, func() { clock.Advance(time.Second) })
	if filepath.Base(b.Path) != "late.txt" {
		t.Errorf("Path = %q, want late.txt", b.Path)
	}
}

func TestWatcher_ExistingFiles(t *testing.T) {
	dir := t.TempDir()
	dropFile(t, dir, "already-here.txt", "present before the watcher started\n")

	w := startWatcher(t, dir, WithExistingFiles())

	b := waitBatch(t, w, nil)
	if filepath.Base(b.Path) != "already-here.txt" {
		t.Errorf("Path = %q, want already-here.txt", b.Path)
	}
}

func TestWatcher_ParseErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, WithDebounce(0))

	dropFile(t, dir, "broken.csv", "text\n\"never closed\n")

	b := waitBatch(t, w, nil)
	if b.Err == nil {
		t.Error("expected parse error for malformed csv")
	}
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
}

// pending returns the batch already queued on w, if any.
func pending(w *Watcher) (Batch, bool) {
	select {
	case b := <-w.batches:
		return b, true
	default:
		return Batch{}, false
	}
}

func TestDeliver_OnlyNewTexts(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := dropFile(t, dir, "reviews.txt", "the first review line\nthe second review line\n")

	w.deliver(path)
	b, ok := pending(w)
	if !ok || len(b.Texts) != 2 {
		t.Fatalf("first delivery = %+v, want both texts", b)
	}

	w.deliver(path)
	if b, ok := pending(w); ok {
		t.Errorf("unchanged file delivered again: %+v", b)
	}

	appendLine(t, path, "the third review line")
	w.deliver(path)
	b, ok = pending(w)
	if !ok {
		t.Fatal("appended text not delivered")
	}
	if !slices.Equal(b.Texts, []string{"the third review line"}) {
		t.Errorf("Texts = %q, want only the appended text", b.Texts)
	}
}

func TestDeliver_RewrittenFileStartsOver(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := dropFile(t, dir, "reviews.txt", "the first review line\nthe second review line\n")
	w.deliver(path)
	pending(w)

	if err := os.WriteFile(path, []byte("a replacement review\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	w.deliver(path)

	b, ok := pending(w)
	if !ok || !slices.Equal(b.Texts, []string{"a replacement review"}) {
		t.Errorf("rewritten file delivered %+v, want the replacement text", b)
	}
}

func TestWatcher_AppendDeliversOnlyNewText(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, WithDebounce(0))

	path := dropFile(t, dir, "reviews.txt", "the first review line\nthe second review line\n")
	first := waitBatch(t, w, nil)
	if len(first.Texts) != 2 {
		t.Fatalf("first batch Texts = %q, want 2 texts", first.Texts)
	}

	appendLine(t, path, "the third review line")
	second := waitBatch(t, w, nil)
	if !slices.Equal(second.Texts, []string{"the third review line"}) {
		t.Errorf("second batch Texts = %q, want only the appended text", second.Texts)
	}

	select {
	case b := <-w.Batches():
		t.Errorf("unexpected extra batch: %+v", b)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStop_ClosesBatches(t *testing.T) {
	w, err := New(t.TempDir(), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if _, ok := <-w.Batches(); ok {
		t.Error("Batches() should be closed after Stop")
	}
}
