package resources

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/filter"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/output"
	"github.com/geoatlas/geoconf/pkg/document"
)

// NewListCommand creates the resources list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [FILE]",
		Short:   "List resources from a document",
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  geoconf resources list config.yml                 # List all resources
  geoconf resources list config.yml -t feature      # Feature resources only
  geoconf resources list config.yml --search lakes  # Search by key and title
  geoconf resources list config.yml -o wide         # Include CRS and temporal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return listResources(cmd, app, path, globals.ParseResources(cmd))
		},
	}

	globals.AddResourceFlags(cmd)

	return cmd
}

// listResources lists the document's resources with optional filters.
func listResources(cmd *cobra.Command, app application.Application, path string, flags *globals.ResourceFlags) error {
	doc, err := app.Document(path)
	if err != nil {
		return err
	}

	resourceFilter := &filter.ResourceFilter{
		Type:    flags.Type,
		Backend: flags.Backend,
		Search:  flags.Search,
		Limit:   flags.Limit,
	}
	keys := resourceFilter.Apply(doc)

	// FormatResources renders a whole document, so narrow it to the
	// matching resources.
	filtered := &document.Document{
		Resources: make(map[string]document.Resource, len(keys)),
	}
	for _, key := range keys {
		filtered.Resources[key] = doc.Resources[key]
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stderr, "Found %d resources\n", len(keys))
	}

	wide := globalFlags.Output == constants.FormatWide
	return output.FormatResources(filtered, wide, globalFlags)
}
