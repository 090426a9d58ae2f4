package cli

import (
	"fmt"

	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group for managing the grade
// and stage vocabularies
func NewConfigCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage grade and stage vocabularies",
	}

	cmd.AddCommand(newConfigAddCommand(app, rootOpts))
	cmd.AddCommand(newConfigListCommand(app, rootOpts))
	cmd.AddCommand(newConfigRemoveCommand(app))

	return cmd
}

func newConfigAddCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind> <name>",
		Short: "Add a configuration entry",
		Long: `Add a configuration entry.

Kind is either "grade" or "stage". Names are unique within a kind.

Example:
  lotledger config add grade Premium`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Registry.Add(cmd.Context(), configuration.Kind(args[0]), args[1])
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (id %d)\n", entry.Kind, entry.Name, entry.ID)
			return nil
		},
	}
}

func newConfigListCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List configuration entries of one kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Registry.List(cmd.Context(), configuration.Kind(args[0]))
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", entry.ID, entry.Name)
			}
			return nil
		},
	}
}

func newConfigRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a configuration entry",
		Long: `Remove a configuration entry.

An entry still referenced by a batch cannot be removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Registry.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed configuration %d\n", id)
			return nil
		},
	}
}
