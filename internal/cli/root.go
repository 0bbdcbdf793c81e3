package cli

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"buckets/internal/config"
	"buckets/internal/logger"
	"buckets/internal/store"
	"buckets/internal/ui"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

type rootOptions struct {
	configPath string
	empty      bool
}

// NewRootCmd builds the buckets command tree. Running it without a
// subcommand starts the terminal UI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "buckets",
		Short: "Daily, tomorrow and planned tasks in the terminal",
		Long: `buckets keeps tasks in three buckets (daily, tomorrow and planned) and
shows how far along each bucket is.

Tasks live in memory for the length of a session.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $"+config.EnvConfigPath+" or the user config dir)")
	root.PersistentFlags().BoolVar(&opts.empty, "empty", false, "start without the demo tasks")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the terminal UI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runUI(opts)
			},
		},
		newStatsCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "buckets %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the config, starts logging and builds the store. The returned
// func flushes the logger. A .env file in the working directory may set
// BUCKETS_CONFIG.
func setup(opts *rootOptions) (config.Config, *store.Store, func(), error) {
	dotenv := godotenv.Load()

	path, err := config.ResolvePath(opts.configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(logger.Options{
		Path:        cfg.Log.Path,
		Development: cfg.Log.Development,
		Level:       cfg.Log.Level,
	}); err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	s, err := newStore(cfg, opts.empty, time.Now())
	if err != nil {
		logger.Sync()
		return config.Config{}, nil, nil, err
	}
	if dotenv == nil {
		logger.Debug("buckets: loaded .env")
	}
	logger.Info("buckets: ready", zap.String("config", path), zap.Int("tasks", s.Snapshot().Len()))
	return cfg, s, logger.Sync, nil
}

func newStore(cfg config.Config, empty bool, now time.Time) (*store.Store, error) {
	var opts []store.Option
	if cfg.Seed && !empty {
		opts = append(opts, store.WithTasks(store.Seed(now)))
	}
	s, err := store.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return s, nil
}

func runUI(opts *rootOptions) error {
	cfg, s, done, err := setup(opts)
	if err != nil {
		return err
	}
	defer done()

	if err := ui.Run(s, cfg); err != nil {
		logger.Error("buckets: ui stopped", err)
		return err
	}
	return nil
}
