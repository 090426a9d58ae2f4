package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStageSummaryCommand creates the stage-summary command
func NewStageSummaryCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stage-summary <stage-id>",
		Short: "Aggregate weight and batch count for one stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			summary, err := app.Ledger.StageSummary(cmd.Context(), id)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d batches, %s total weight\n",
				summary.StageName, summary.BatchCount, summary.TotalWeight)
			return nil
		},
	}
}
