package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lotledger/core/internal/domain/catalog"
	"github.com/spf13/cobra"
)

// NewTemplateCommand creates the template command group for managing product
// templates
func NewTemplateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage product templates",
	}

	cmd.AddCommand(newTemplateCreateCommand(app, rootOpts))
	cmd.AddCommand(newTemplateListCommand(app, rootOpts))
	cmd.AddCommand(newTemplateShowCommand(app, rootOpts))

	return cmd
}

func newTemplateCreateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var specsJSON string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a product template",
		Long: `Create a product template.

Spec definitions are given as a JSON array. Each definition has a key, a
type (number, text, boolean, enum), an optional required flag, min/max
bounds for numbers, and allowed values for enums.

Example:
  lotledger template create CoffeeLot --specs '[
    {"key":"moisture","type":"number","min":0,"max":20},
    {"key":"origin","type":"text","required":true}
  ]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var specs catalog.SpecDefinitions
			if specsJSON != "" {
				if err := json.Unmarshal([]byte(specsJSON), &specs); err != nil {
					return fmt.Errorf("invalid --specs JSON: %w", err)
				}
			}

			template, err := app.Templates.Create(cmd.Context(), args[0], specs)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), template)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %q (id %d) with %d spec definitions\n",
				template.Name, template.ID, len(template.Specs))
			return nil
		},
	}

	cmd.Flags().StringVar(&specsJSON, "specs", "", "spec definitions as a JSON array")

	return cmd
}

func newTemplateListCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List product templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), templates)
			}
			for _, template := range templates {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d specs\n",
					template.ID, template.Name, len(template.Specs))
			}
			return nil
		},
	}
}

func newTemplateShowCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product template and its spec definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			template, err := app.Templates.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), template)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", template.Name, template.ID)
			for _, def := range template.Specs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s%s%s\n",
					def.Key, def.Type, requiredLabel(def), constraintLabel(def))
			}
			return nil
		},
	}
}

func requiredLabel(def catalog.SpecDefinition) string {
	if def.Required {
		return " (required)"
	}
	return ""
}

func constraintLabel(def catalog.SpecDefinition) string {
	switch def.Type {
	case catalog.SpecTypeNumber:
		var parts []string
		if def.Min != nil {
			parts = append(parts, fmt.Sprintf("min %g", *def.Min))
		}
		if def.Max != nil {
			parts = append(parts, fmt.Sprintf("max %g", *def.Max))
		}
		if len(parts) > 0 {
			return " [" + strings.Join(parts, ", ") + "]"
		}
	case catalog.SpecTypeEnum:
		return " [" + strings.Join(def.Allowed, "|") + "]"
	}
	return ""
}
