package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/riskibarqy/liveticker/internal/config"
	"github.com/riskibarqy/liveticker/internal/observability"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/spf13/cobra"
)

var envFiles []string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "liveticker",
		Short:         "Football fixtures, scores, news and history for the liveticker dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files loaded before reading the environment")

	root.AddCommand(
		newFixturesCommand(),
		newReconcileCommand(),
		newNewsCommand(),
		newHistoryCommand(),
		newVerifyHistoryCommand(),
		newScheduleCommand(),
	)
	return root
}

// Execute runs the CLI. Errors are logged here; the caller only decides the exit code.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	logging.SetDefault(logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatConsole, Output: os.Stderr}))

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger := logging.Default()
		logger.ErrorContext(ctx, "command failed", "error", err)
		_ = logger.Sync()
		return err
	}
	return nil
}

// withApp loads configuration, sets up logging and tracing and builds the service
// container before handing control to run.
func withApp(run func(cmd *cobra.Command, container *app.Container) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr}).
			With("command", cmd.Name(), "service", cfg.ServiceName)
		logging.SetDefault(logger)
		defer func() { _ = logger.Sync() }()

		shutdownTracing, err := observability.InitUptrace(cfg, logger)
		if err != nil {
			return fmt.Errorf("init uptrace: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				logger.Warn("uptrace shutdown failed", "error", err)
			}
		}()

		container, err := app.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("build app: %w", err)
		}
		return run(cmd, container)
	}
}
