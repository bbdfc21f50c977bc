package app

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/check"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/completion"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/generate"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/inspect"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/render"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/resources"
	"github.com/geoatlas/geoconf/cmd/geoconf/cmd/validate"
	"github.com/geoatlas/geoconf/pkg/constants"
)

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// NewInspectCommand creates the inspect command with app dependencies.
func (a *App) NewInspectCommand() *cobra.Command {
	return inspect.NewCommand(a)
}

// NewResourcesCommand creates the resources command with app dependencies.
func (a *App) NewResourcesCommand() *cobra.Command {
	return resources.NewCommand(a)
}

// NewRenderCommand creates the render command with app dependencies.
func (a *App) NewRenderCommand() *cobra.Command {
	return render.NewCommand(a)
}

// NewGenerateCommand creates the generate command with app dependencies.
func (a *App) NewGenerateCommand() *cobra.Command {
	return generate.NewCommand(a)
}

// NewCheckCommand creates the check command with app dependencies.
func (a *App) NewCheckCommand() *cobra.Command {
	return check.NewCommand(a)
}

// NewCompletionCommand creates the completion command.
func (a *App) NewCompletionCommand() *cobra.Command {
	return completion.NewCommand()
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("geoconf %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// NewManCommand creates the man command.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate man page for the geoconf CLI tool.`,
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "GEOCONF",
				Section: "1",
				Source:  "geoconf",
				Manual:  "geoconf Manual",
			}
			return doc.GenMan(cmd.Root(), header, os.Stdout)
		},
	}
}

// NewDocsCommand creates the docs command.
func (a *App) NewDocsCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate markdown documentation for all commands",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(outputDir, constants.DirPermissions); err != nil {
				return err
			}
			return doc.GenMarkdownTree(cmd.Root(), outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "dir", "./docs", "Output directory for generated documentation")

	return cmd
}
