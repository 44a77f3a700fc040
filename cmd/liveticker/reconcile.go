package main

import (
	"fmt"
	"io"

	"github.com/riskibarqy/liveticker/internal/app"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"github.com/spf13/cobra"
)

const maxUnresolvedLines = 5

func newReconcileCommand() *cobra.Command {
	var input usecase.ReconcileInput

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Fill in missing results of past fixtures from ESPN",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, container *app.Container) error {
			result, err := container.Reconciler.Reconcile(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("reconcile %s: %w", input.Competition, err)
			}
			return printReconcileResult(cmd.OutOrStdout(), result)
		}),
	}

	cmd.Flags().StringVar(&input.Competition, "competition", "CL", "competition code (CL, PL, PD)")
	cmd.Flags().StringVar(&input.Location, "file", "", "fixture store; defaults to FOOTBALL_DATA_OUTPUT_MAP")
	cmd.Flags().StringSliceVar(&input.Dates, "date", nil, "query these dates (YYYY-MM-DD) instead of the pending ones")
	return cmd
}

func printReconcileResult(w io.Writer, result usecase.ReconcileResult) error {
	if result.Updated > 0 {
		if _, err := fmt.Fprintf(w, "%d fixtures updated\n", result.Updated); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "no updates"); err != nil {
		return err
	}

	for i, item := range result.Unresolved {
		if i == maxUnresolvedLines {
			_, err := fmt.Fprintf(w, "... %d more unresolved\n", len(result.Unresolved)-maxUnresolvedLines)
			return err
		}
		if _, err := fmt.Fprintf(w, "%s: %s vs %s\n", item.Date, item.Home, item.Away); err != nil {
			return err
		}
	}
	return nil
}
