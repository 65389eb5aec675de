package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/batch"
	"github.com/tharanidharane77-prog/senti/internal/logging"
	"github.com/tharanidharane77-prog/senti/internal/output"
	"github.com/tharanidharane77-prog/senti/internal/watcher"
)

var (
	watchDir      string
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Analyze text files as they appear in a directory",
	Long: `Watch a directory and analyze every text file created or written in it.

Each file is parsed like "senti analyze --file" and the dashboard is
printed after each batch. With auto_refresh enabled the dashboard is
printed at most once per refresh_rate seconds instead.

The watcher runs in the foreground. Press Ctrl+C to stop and print a
final summary.`,
	Example: `  # Watch an inbox directory
  senti watch --dir ./inbox

  # Include files already in the directory
  senti watch --dir ./inbox --existing`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "directory to watch (required)")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also analyze files already in the directory")
	_ = watchCmd.MarkFlagRequired("dir")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.InitLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	sess, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := []watcher.Option{
		watcher.WithExtensions(cfg.Watch.Extensions...),
		watcher.WithDebounce(cfg.Watch.Debounce),
		watcher.WithLogger(logger),
	}
	if watchExisting {
		opts = append(opts, watcher.WithExistingFiles())
	}

	w, err := watcher.New(watchDir, opts...)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s for %s files (press Ctrl+C to stop)...\n\n",
		watchDir, strings.Join(cfg.Watch.Extensions, ", "))

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig.String())
			close(done)
		case <-finished:
		}
	}()

	loop := &watchLoop{
		out:   out,
		sess:  sess,
		clock: clockwork.NewRealClock(),
	}
	loopErr := loop.run(w.Batches(), done)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	if loopErr != nil {
		return loopErr
	}

	return loop.printSummary()
}

// watchLoop owns the session's history while the watcher runs. Batches
// arrive over a channel, so every Record call happens on this goroutine.
type watchLoop struct {
	out   io.Writer
	sess  *session
	clock clockwork.Clock

	files int
	dirty bool
}

// run consumes batches until done is closed or the batch channel closes.
func (l *watchLoop) run(batches <-chan watcher.Batch, done <-chan struct{}) error {
	var tick <-chan time.Time
	if l.sess.cfg.AutoRefresh {
		ticker := l.clock.NewTicker(l.sess.cfg.RefreshInterval())
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	for {
		select {
		case <-done:
			return nil

		case b, ok := <-batches:
			if !ok {
				return nil
			}
			if err := l.handle(b); err != nil {
				return err
			}

		case <-tick:
			if !l.dirty {
				continue
			}
			if err := l.printDashboard(); err != nil {
				return err
			}
		}
	}
}

func (l *watchLoop) handle(b watcher.Batch) error {
	if b.Err != nil {
		l.sess.logger.Warn("skipping file", "path", b.Path, "error", b.Err)
		fmt.Fprintf(l.out, "⚠️  Skipping %s: %v\n\n", b.Path, b.Err)
		return nil
	}

	res, err := batch.Analyze(l.sess.store, b.Texts, nil)
	l.files++
	fmt.Fprintf(l.out, "📄 %s\n", b.Path)
	fmt.Fprint(l.out, output.RenderBatchResult(res))
	if err != nil {
		return err
	}
	l.sess.logger.Info("analyzed file", "path", b.Path, "recorded", len(res.Recorded), "skipped", len(res.Skipped))

	if l.sess.cfg.AutoRefresh {
		l.dirty = true
		return nil
	}
	return l.printDashboard()
}

func (l *watchLoop) printDashboard() error {
	l.dirty = false
	return printDashboard(l.out, l.sess, analyzer.New(l.sess.store))
}

func (l *watchLoop) printSummary() error {
	summary, err := analyzer.New(l.sess.store).GetSummary()
	if err != nil {
		return err
	}

	fmt.Fprintf(l.out, "\nWatch stopped. %d files, %d analyses.\n", l.files, summary.Total)
	if summary.Total > 0 {
		fmt.Fprint(l.out, output.RenderMetrics(summary))
	}
	return nil
}
