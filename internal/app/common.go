package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/tharanidharane77-prog/senti/internal/config"
	"github.com/tharanidharane77-prog/senti/internal/history"
	"github.com/tharanidharane77-prog/senti/internal/sentiment"
	"github.com/tharanidharane77-prog/senti/internal/store"
)

// session is one run's configuration and analysis history.
type session struct {
	cfg    *config.Config
	store  *history.Store
	logger *slog.Logger
	closer func() error
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// loadConfig loads the config file and environment, then applies the
// global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if backend != "" {
		cfg.Backend = backend
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newGenerator returns the simulated analyzer, seeded from --seed when set.
func newGenerator() sentiment.Generator {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return sentiment.NewSeededGenerator(s)
}

// openSession creates an empty history on the configured backend.
func openSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	opts := []history.Option{
		history.WithGenerator(newGenerator()),
		history.WithLogger(logger),
	}

	sess := &session{cfg: cfg, logger: logger}

	if cfg.Backend == config.BackendSQLite {
		db, err := store.NewMemory()
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		opts = append(opts, history.WithBackend(db))
		sess.closer = db.Close
	}

	sess.store = history.New(opts...)
	logger.Debug("session started", "backend", cfg.Backend, "seeded", seed != 0)
	return sess, nil
}

// interactive reports whether stderr is a terminal, where spinners and
// the simulated delay are shown.
func interactive() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
