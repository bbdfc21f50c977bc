// Package resources provides commands for listing and showing document resources.
package resources

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
)

// NewCommand creates the resources command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		GroupID: "core",
		Short:   "List and show document resources",
		Long: `Resources works with the resources section of a configuration document.

Available subcommands:
  list    - All resources as a table
  show    - One resource in full detail`,
		Example: `  geoconf resources list config.yml              # List all resources
  geoconf resources list config.yml -t feature   # Feature resources only
  geoconf resources show config.yml lakes        # Show one resource`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to help if no subcommand
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewShowCommand(app))

	return cmd
}
