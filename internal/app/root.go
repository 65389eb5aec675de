package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	backend    string
	logLevel   string
	logFormat  string
	seed       int64

	// RootCmd is the base command for senti.
	RootCmd = &cobra.Command{
		Use:   "senti",
		Short: "Simulated real-time sentiment analysis dashboard",
		Long: `senti records texts, labels each one with a simulated sentiment
(POSITIVE, NEGATIVE, NEUTRAL or MIXED) and confidence scores, and shows
the session's history as counts, shares, a history table and trends.

Scores are random. No model runs and nothing is sent anywhere. History
lives for one session only.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "senti %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/senti/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&backend, "backend", "", "history backend: memory or sqlite")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	RootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for the simulated analyzer (0 picks a random seed)")

	// Enable command suggestions for typos
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(tuiCmd)
	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// SetVersionInfo sets the build information printed by "senti version".
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
