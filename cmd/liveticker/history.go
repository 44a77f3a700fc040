package main

import (
	"fmt"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Pick today's history entries for the digest",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			result, err := container.History.Curate(cmd.Context())
			if err != nil {
				return fmt.Errorf("curate history: %w", err)
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%d history entries selected from %d candidates\n", len(result.Items), result.PoolSize); err != nil {
				return err
			}
			for _, item := range result.Items {
				if _, err := fmt.Fprintf(out, "- %s (%s)\n", item.Title, item.Source); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func newVerifyHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-history",
		Short: "Check the published history entries",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			report, err := container.History.Verify(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d history entries ok\n", report.Total)
			return err
		}),
	}
}
