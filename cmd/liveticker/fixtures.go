package main

import (
	"fmt"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"github.com/spf13/cobra"
)

func newFixturesCommand() *cobra.Command {
	var input usecase.FixtureIngestionInput

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Rebuild a competition document from football-data.org",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			result, err := container.Fixtures.Ingest(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("ingest fixtures: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d matches, %d standings written to %s\n",
				result.Snapshot.Competition.Label,
				len(result.Snapshot.Fixtures),
				len(result.Snapshot.Standings),
				result.Location,
			)
			return err
		}),
	}

	cmd.Flags().StringVar(&input.Competition, "competition", "CL", "competition code (CL, PL, PD, ...)")
	cmd.Flags().IntVar(&input.Season, "season", 0, "season start year; defaults to the current season")
	cmd.Flags().StringVar(&input.Output, "output", "", "output file; defaults to FOOTBALL_DATA_OUTPUT_MAP")
	cmd.Flags().StringVar(&input.Label, "label", "", "display label; defaults to FOOTBALL_DATA_LABEL_MAP")
	return cmd
}
