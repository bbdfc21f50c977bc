package resources

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/output"
	"github.com/geoatlas/geoconf/internal/cmd/resource"
	"github.com/geoatlas/geoconf/internal/cmd/table"
	"github.com/geoatlas/geoconf/pkg/document"
)

// NewShowCommand creates the resources show subcommand.
func NewShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "show [FILE] KEY",
		Short: "Show one resource in detail",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  geoconf resources show config.yml lakes   # Resource from a file
  geoconf resources show lakes              # File from GEOCONF_CONFIG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := "", args[0]
			if len(args) == 2 {
				path, key = args[0], args[1]
			}
			return showResource(cmd, app, path, key)
		},
	}
}

// showResource shows detailed information about a specific resource.
func showResource(cmd *cobra.Command, app application.Application, path, key string) error {
	doc, err := app.Document(path)
	if err != nil {
		return err
	}

	res, err := resource.Get(doc, key)
	if err != nil {
		// Suppress usage display for not found errors
		cmd.SilenceUsage = true
		if suggestion := resource.Suggest(doc, key); suggestion != "" {
			return fmt.Errorf("%w (did you mean %q?)", err, suggestion)
		}
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	// For table output, show detailed view
	if globalFlags.Output == constants.FormatTable || globalFlags.Output == "" {
		printResourceDetails(key, &res)
		return nil
	}

	// For structured output, return the resource
	return output.FormatAny(res, globalFlags)
}

// printResourceDetails prints detailed resource information using table format.
func printResourceDetails(key string, res *document.Resource) {
	formatter := output.NewFormatter(output.FormatTable)

	fmt.Printf("Resource: %s\n\n", key)

	printBasicInfo(key, res, formatter)
	printExtentsInfo(res, formatter)
	printProvidersInfo(res, formatter)
	printLinksInfo(res, formatter)
}

func printBasicInfo(key string, res *document.Resource, formatter output.Formatter) {
	basicRows := [][]string{
		{"Key", key},
		{"Type", res.Type.String()},
		{"Title", res.Title},
	}

	if res.Description != "" {
		basicRows = append(basicRows, []string{"Description", table.Truncate(res.Description, 80)})
	}
	if len(res.Keywords) > 0 {
		basicRows = append(basicRows, []string{"Keywords", strings.Join(res.Keywords, ", ")})
	}

	basicTable := table.Data{
		Headers: []string{"Property", "Value"},
		Rows:    basicRows,
	}

	fmt.Println("Basic Information:")
	_ = formatter.Format(os.Stdout, basicTable)
	fmt.Println()
}

func printExtentsInfo(res *document.Resource, formatter output.Formatter) {
	extentRows := [][]string{
		{"Bbox", table.FormatBbox(res.Extents.Spatial.Bbox)},
		{"CRS", table.ShortCRS(res.Extents.Spatial.CRS)},
		{"Temporal", table.FormatTemporal(res.Extents.Temporal)},
	}

	extentsTable := table.Data{
		Headers: []string{"Property", "Value"},
		Rows:    extentRows,
	}

	fmt.Println("Extents:")
	_ = formatter.Format(os.Stdout, extentsTable)
	fmt.Println()
}

func printProvidersInfo(res *document.Resource, formatter output.Formatter) {
	if len(res.Providers) == 0 {
		return
	}

	fmt.Println("Providers:")
	_ = formatter.Format(os.Stdout, table.ProvidersToTableData(res.Providers))
	fmt.Println()
}

func printLinksInfo(res *document.Resource, formatter output.Formatter) {
	if len(res.Links) == 0 {
		return
	}

	linkRows := make([][]string, 0, len(res.Links))
	for _, link := range res.Links {
		rel := link.Rel
		if rel == "" {
			rel = "-"
		}
		linkRows = append(linkRows, []string{rel, table.Truncate(link.Href, 60)})
	}

	linksTable := table.Data{
		Headers: []string{"Rel", "Href"},
		Rows:    linkRows,
	}

	fmt.Println("Links:")
	_ = formatter.Format(os.Stdout, linksTable)
	fmt.Println()
}
