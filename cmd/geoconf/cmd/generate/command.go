// Package generate provides the starter document generation command.
package generate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/alerts"
	"github.com/geoatlas/geoconf/internal/cmd/notify"
	"github.com/geoatlas/geoconf/internal/embedded"
	"github.com/geoatlas/geoconf/pkg/constants"
	"github.com/geoatlas/geoconf/pkg/errors"
)

const defaultPath = "geoconf.yml"

// NewCommand creates the generate command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [PATH]",
		GroupID: "management",
		Short:   "Generate a starter configuration document",
		Long: `Generate writes a minimal valid configuration document to start a new
deployment from. The document passes validation as written and marks
the spots that need real values.

The default destination is ` + defaultPath + ` in the current directory.
Use "-" to write to stdout.`,
		Example: `  geoconf generate                   # Write ` + defaultPath + `
  geoconf generate south-api.yml     # Write a named file
  geoconf generate -                 # Write to stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPath
			if len(args) > 0 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			return runGenerate(cmd, path, force)
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite the destination if it exists")

	return cmd
}

func runGenerate(cmd *cobra.Command, path string, force bool) error {
	sample := embedded.SampleConfig()

	if path == "-" {
		_, err := cmd.OutOrStdout().Write(sample)
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, errors.ErrAlreadyExists)
		}
	}

	if err := os.WriteFile(path, sample, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	notifier, err := notify.NewFromCommand(cmd)
	if err != nil {
		return err
	}

	alert := alerts.NewSuccess(fmt.Sprintf("Generated %s", path)).
		WithDetails(
			"Replace the placeholder metadata and resource entries",
			fmt.Sprintf("Run 'geoconf validate %s' after editing", path),
		)
	return notifier.Alert(alert)
}
