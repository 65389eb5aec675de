package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tharanidharane77-prog/senti/internal/analyzer"
	"github.com/tharanidharane77-prog/senti/internal/batch"
	"github.com/tharanidharane77-prog/senti/internal/logging"
	"github.com/tharanidharane77-prog/senti/internal/output"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
	"github.com/tharanidharane77-prog/senti/internal/tui"
)

var (
	analyzeFile      string
	analyzeDashboard bool
	analyzeTrends    bool
	analyzeHistory   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [TEXT...]",
	Short: "Analyze texts and print the results",
	Long: `Analyze each TEXT argument and every text in --file, then print the
requested views of the session's history.

A .txt file holds one text per line. A .csv file uses its "text" column
when the header has one and the first column otherwise. Texts shorter
than 10 characters are skipped.`,
	Example: `  # One text
  senti analyze "The delivery was quick and the staff were lovely"

  # A file of reviews, then the dashboard and trends
  senti analyze --file reviews.csv --dashboard --trends

  # Reproducible results
  senti analyze --seed 42 --history "first review text" "second review text"`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "analyze every text in a .txt or .csv file")
	analyzeCmd.Flags().BoolVar(&analyzeDashboard, "dashboard", false, "print the dashboard after analyzing")
	analyzeCmd.Flags().BoolVar(&analyzeTrends, "trends", false, "print the trends after analyzing")
	analyzeCmd.Flags().BoolVar(&analyzeHistory, "history", false, "print the full history, newest first")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && analyzeFile == "" {
		return errors.New("nothing to analyze: pass text arguments or --file")
	}

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

	out := cmd.OutOrStdout()

	if err := analyzeArgs(out, cmd.ErrOrStderr(), sess, args); err != nil {
		return err
	}

	if analyzeFile != "" {
		if err := analyzeBatchFile(out, cmd.ErrOrStderr(), sess, analyzeFile); err != nil {
			return err
		}
	}

	return printViews(out, sess)
}

// analyzeArgs records each text argument and prints its result. Texts that
// fail validation are reported and skipped.
func analyzeArgs(out, errOut io.Writer, sess *session, texts []string) error {
	invalid := 0
	for _, text := range texts {
		if interactive() {
			output.NewSpinner("Analyzing sentiment...").RunFor(tui.AnalyzeDelay)
		}

		rec, err := sess.store.Record(text)
		if err != nil {
			var verr *sentiment.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(errOut, "⚠️  Skipping %q: %v\n", analyzer.Excerpt(text, 30), verr)
				invalid++
				continue
			}
			return fmt.Errorf("failed to analyze text: %w", err)
		}

		fmt.Fprintln(out, output.RenderResult(rec))
	}

	if len(texts) > 0 && invalid == len(texts) && analyzeFile == "" {
		return errors.New("no valid text to analyze")
	}
	return nil
}

func analyzeBatchFile(out, errOut io.Writer, sess *session, path string) error {
	texts, err := batch.ParseFile(path)
	if err != nil {
		return err
	}
	sess.logger.Info("analyzing file", "path", path, "texts", len(texts))

	bar := output.NewProgress(len(texts), "Analyzing texts")
	bar.SetWriter(errOut)

	res, err := batch.Analyze(sess.store, texts, bar.Increment)
	bar.Finish()

	fmt.Fprint(out, output.RenderBatchResult(res))
	if err != nil {
		return err
	}

	recent, err := sess.store.Recent(sess.cfg.RecentWindow)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderRecent(recent, sess.cfg.RecentExcerpt))
	return nil
}

// printViews prints the views selected by --dashboard, --history and
// --trends, in that order.
func printViews(out io.Writer, sess *session) error {
	a := analyzer.New(sess.store)

	if analyzeDashboard {
		if err := printDashboard(out, sess, a); err != nil {
			return err
		}
	}

	if analyzeHistory {
		records, err := sess.store.HistoryReversed()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, output.RenderHistoryTable(records, sess.cfg.HistoryExcerpt))
	}

	if analyzeTrends {
		trends, err := a.GetTrends()
		if err != nil && !errors.Is(err, analyzer.ErrNotEnoughData) {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, output.RenderTrends(trends))
	}

	return nil
}

func printDashboard(out io.Writer, sess *session, a *analyzer.Analyzer) error {
	summary, err := a.GetSummary()
	if err != nil {
		return err
	}
	records, err := sess.store.HistoryReversed()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderDashboard(summary, records, sess.cfg.HistoryExcerpt))
	return nil
}
