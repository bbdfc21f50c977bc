// Package render provides the resolved-document rendering command.
package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	pkgconstants "github.com/geoatlas/geoconf/pkg/constants"
	"github.com/geoatlas/geoconf/pkg/errors"
)

// NewCommand creates the render command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render [FILE]",
		GroupID: "core",
		Short:   "Render a resolved configuration document",
		Long: `Render loads a configuration document and writes it back out with
environment references interpolated and defaults applied. The output
is the configuration the server actually runs with.

Output goes to stdout unless -f names a destination file.`,
		Example: `  geoconf render config.yml                  # Resolved YAML to stdout
  geoconf render config.yml -o json          # Resolved JSON
  geoconf render config.yml -f resolved.yml  # Write to a file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, app)
		},
	}

	// -o selects the output format, so the destination file gets -f
	cmd.Flags().StringP("file", "f", "",
		"Write output to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, app application.Application) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	destination, _ := cmd.Flags().GetString("file")

	doc, err := app.Document(path)
	if err != nil {
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	var rendered []byte
	switch globalFlags.Output {
	case constants.FormatJSON:
		rendered, err = doc.JSON()
	default:
		rendered, err = doc.Marshal()
	}
	if err != nil {
		return err
	}
	if len(rendered) > 0 && rendered[len(rendered)-1] != '\n' {
		rendered = append(rendered, '\n')
	}

	if destination == "" {
		_, err = cmd.OutOrStdout().Write(rendered)
		return err
	}

	if err := os.WriteFile(destination, rendered, pkgconstants.FilePermissions); err != nil {
		return errors.WrapIO("write", destination, err)
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", destination)
	}
	return nil
}
