package main

import (
	"fmt"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/riskibarqy/liveticker/internal/observability"
	"github.com/spf13/cobra"
)

func newScheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the news, history and reconcile jobs on their cron schedules",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			cfg := container.Config

			stopProfiling, err := observability.InitPyroscope(cfg, container.Logger)
			if err != nil {
				return fmt.Errorf("init pyroscope: %w", err)
			}
			defer func() {
				if err := stopProfiling(); err != nil {
					container.Logger.Warn("pyroscope stop failed", "error", err)
				}
			}()

			scheduler, err := app.NewScheduler(app.ScheduleConfig{
				Location:              cfg.Location(),
				NewsSpec:              cfg.ScheduleNewsCron,
				HistorySpec:           cfg.ScheduleHistoryCron,
				ReconcileSpec:         cfg.ScheduleReconcileCron,
				ReconcileCompetitions: cfg.ScheduleReconcileCompetitions,
				RunOnce:               cfg.RunOnce,
			}, container.News, container.History, container.Reconciler, container.Logger)
			if err != nil {
				return err
			}
			return scheduler.Run(cmd.Context())
		}),
	}
}
