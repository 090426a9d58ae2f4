package cli

import (
	"encoding/json"
	"fmt"

	appinventory "github.com/lotledger/core/internal/application/inventory"
	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewBatchCommand creates the batch command group for working the ledger
func NewBatchCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Record, amend and inspect inventory batches",
	}

	cmd.AddCommand(newBatchAddCommand(app, rootOpts))
	cmd.AddCommand(newBatchUpdateCommand(app, rootOpts))
	cmd.AddCommand(newBatchListCommand(app, rootOpts))
	cmd.AddCommand(newBatchShowCommand(app, rootOpts))
	cmd.AddCommand(newBatchRemoveCommand(app))
	cmd.AddCommand(newBatchHistoryCommand(app, rootOpts))

	return cmd
}

// batchFlags holds the shared add/update flag values
type batchFlags struct {
	weight    string
	price     string
	typeID    int64
	gradeID   int64
	stageID   int64
	specsJSON string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.weight, "weight", "", "batch weight")
	cmd.Flags().StringVar(&f.price, "price", "", "price per unit of weight")
	cmd.Flags().Int64Var(&f.typeID, "type", 0, "product template id")
	cmd.Flags().Int64Var(&f.gradeID, "grade", 0, "grade configuration id")
	cmd.Flags().Int64Var(&f.stageID, "stage", 0, "stage configuration id")
	cmd.Flags().StringVar(&f.specsJSON, "specs", "", "spec values as a JSON object")
}

func (f *batchFlags) parseSpecs() (inventory.SpecMap, error) {
	if f.specsJSON == "" {
		return nil, nil
	}
	var specs inventory.SpecMap
	if err := json.Unmarshal([]byte(f.specsJSON), &specs); err != nil {
		return nil, fmt.Errorf("invalid --specs JSON: %w", err)
	}
	return specs, nil
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return d, nil
}

func newBatchAddCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Record a new inventory batch",
		Long: `Record a new inventory batch.

Template, grade and stage references are optional; an unclassified batch
can be classified later with "batch update". Spec values are validated
against the referenced template.

Example:
  lotledger batch add "Lot 42" --weight 12.5 --price 3 --type 1 \
    --specs '{"moisture":11.2,"origin":"Brazil"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := appinventory.CreateBatchRequest{
				Name:   args[0],
				Weight: decimal.Zero,
				Price:  decimal.Zero,
			}

			var err error
			if flags.weight != "" {
				if req.Weight, err = parseDecimalFlag("weight", flags.weight); err != nil {
					return err
				}
			}
			if flags.price != "" {
				if req.Price, err = parseDecimalFlag("price", flags.price); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("type") {
				req.TypeID = &flags.typeID
			}
			if cmd.Flags().Changed("grade") {
				req.GradeID = &flags.gradeID
			}
			if cmd.Flags().Changed("stage") {
				req.StageID = &flags.stageID
			}
			if req.Specs, err = flags.parseSpecs(); err != nil {
				return err
			}

			batch, err := app.Ledger.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), batch)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded batch %q (id %d)\n", batch.Name, batch.ID)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newBatchUpdateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	flags := &batchFlags{}
	var name string
	var clearType, clearGrade, clearStage bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Amend an existing batch",
		Long: `Amend an existing batch.

Only the given flags change; everything else keeps its stored value. Use
the --clear-* flags to detach a reference. The merged result is
re-validated exactly as on add.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := appinventory.UpdateBatchRequest{
				ClearType:  clearType,
				ClearGrade: clearGrade,
				ClearStage: clearStage,
			}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("weight") {
				weight, err := parseDecimalFlag("weight", flags.weight)
				if err != nil {
					return err
				}
				patch.Weight = &weight
			}
			if cmd.Flags().Changed("price") {
				price, err := parseDecimalFlag("price", flags.price)
				if err != nil {
					return err
				}
				patch.Price = &price
			}
			if cmd.Flags().Changed("type") {
				patch.TypeID = &flags.typeID
			}
			if cmd.Flags().Changed("grade") {
				patch.GradeID = &flags.gradeID
			}
			if cmd.Flags().Changed("stage") {
				patch.StageID = &flags.stageID
			}
			if patch.Specs, err = flags.parseSpecs(); err != nil {
				return err
			}

			batch, err := app.Ledger.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), batch)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated batch %q (id %d)\n", batch.Name, batch.ID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "new batch name")
	cmd.Flags().BoolVar(&clearType, "clear-type", false, "detach the template reference")
	cmd.Flags().BoolVar(&clearGrade, "clear-grade", false, "detach the grade reference")
	cmd.Flags().BoolVar(&clearStage, "clear-stage", false, "detach the stage reference")

	return cmd
}

func newBatchListCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	flags := &batchFlags{}
	var namePrefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := inventory.BatchFilter{NamePrefix: namePrefix}
			if cmd.Flags().Changed("type") {
				filter.TypeID = &flags.typeID
			}
			if cmd.Flags().Changed("grade") {
				filter.GradeID = &flags.gradeID
			}
			if cmd.Flags().Changed("stage") {
				filter.StageID = &flags.stageID
			}

			batches, err := app.Ledger.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), batches)
			}
			for _, batch := range batches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s kg\t%s total\n",
					batch.ID, batch.Name, batch.Weight, batch.TotalValue())
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&flags.typeID, "type", 0, "filter by product template id")
	cmd.Flags().Int64Var(&flags.gradeID, "grade", 0, "filter by grade configuration id")
	cmd.Flags().Int64Var(&flags.stageID, "stage", 0, "filter by stage configuration id")
	cmd.Flags().StringVar(&namePrefix, "name-prefix", "", "filter by name prefix")

	return cmd
}

func newBatchShowCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			batch, err := app.Ledger.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), batch)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (id %d)\n", batch.Name, batch.ID)
			fmt.Fprintf(out, "  weight: %s\n", batch.Weight)
			fmt.Fprintf(out, "  price:  %s\n", batch.Price)
			fmt.Fprintf(out, "  total:  %s\n", batch.TotalValue())
			fmt.Fprintf(out, "  type:   %s\n", refLabel(batch.TypeID))
			fmt.Fprintf(out, "  grade:  %s\n", refLabel(batch.GradeID))
			fmt.Fprintf(out, "  stage:  %s\n", refLabel(batch.StageID))
			for key, value := range batch.Specs {
				fmt.Fprintf(out, "  spec %s: %v\n", key, value)
			}
			return nil
		},
	}
}

func newBatchRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a batch from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Ledger.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed batch %d\n", id)
			return nil
		},
	}
}

func newBatchHistoryCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the audit trail of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			trail, err := app.Ledger.History(cmd.Context(), id)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), trail)
			}
			for _, entry := range trail {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					entry.OccurredAt.Format("2006-01-02 15:04:05"), entry.Action, entry.Detail)
			}
			return nil
		},
	}
}

func refLabel(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
