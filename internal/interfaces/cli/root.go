package cli

import (
	"fmt"

	appcatalog "github.com/lotledger/core/internal/application/catalog"
	appconfiguration "github.com/lotledger/core/internal/application/configuration"
	appinventory "github.com/lotledger/core/internal/application/inventory"
	"github.com/spf13/cobra"
)

// App bundles the application services the commands operate on
type App struct {
	Registry  *appconfiguration.RegistryService
	Templates *appcatalog.TemplateService
	Ledger    *appinventory.LedgerService
}

// RootOptions holds global flags for all commands
type RootOptions struct {
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lotledger CLI
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lotledger",
		Short: "Inventory batch ledger",
		Long:  "Track inventory batches against per-product spec templates.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewConfigCommand(app, opts))
	cmd.AddCommand(NewTemplateCommand(app, opts))
	cmd.AddCommand(NewBatchCommand(app, opts))
	cmd.AddCommand(NewStageSummaryCommand(app, opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
