package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tharanidharane77-prog/senti/internal/logging"
	"github.com/tharanidharane77-prog/senti/internal/tui"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

Tabs: Analyze Text, Dashboard, Trends and About. The sidebar holds the
language, auto refresh settings and the total number of analyses.

Logs are discarded while the dashboard owns the terminal. Pass --log-file
to keep them.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	RootCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = logging.InitLogger(f, cfg.Log.Level, cfg.Log.Format)
	} else {
		slog.SetDefault(logger)
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(tui.RunOpts{Cfg: cfg, Store: sess.store})
}
