package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/spf13/cobra"
)

const newsWatchInterval = time.Hour

func newNewsCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Collect the configured RSS feeds into the news digest",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			ctx := cmd.Context()
			if err := container.News.EnsureDigest(ctx); err != nil {
				return err
			}

			collect := func(ctx context.Context) error {
				result, err := container.News.Collect(ctx)
				if err != nil {
					return fmt.Errorf("collect news: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "news updated at %s (%d failed feeds)\n",
					result.UpdatedAt.Format(time.RFC3339), result.FailedFeeds)
				return err
			}

			if err := collect(ctx); err != nil {
				if !watch {
					return err
				}
				container.Logger.ErrorContext(ctx, "news run failed", "error", err)
			}
			if !watch {
				return nil
			}

			ticker := time.NewTicker(newsWatchInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := collect(ctx); err != nil {
						container.Logger.ErrorContext(ctx, "news run failed", "error", err)
					}
				}
			}
		}),
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and refresh every hour")
	return cmd
}
