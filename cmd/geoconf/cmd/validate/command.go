// Package validate provides the document validation command.
package validate

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf"
	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/alerts"
	"github.com/geoatlas/geoconf/internal/cmd/docfile"
	"github.com/geoatlas/geoconf/internal/cmd/emoji"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/hints"
	"github.com/geoatlas/geoconf/internal/cmd/notify"
	"github.com/geoatlas/geoconf/internal/cmd/output"
	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
)

// NewCommand creates the validate command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [FILE]",
		GroupID: "core",
		Short:   "Validate a configuration document",
		Long: `Validate loads a configuration document and reports every problem it
finds: YAML syntax errors, schema violations, and semantic rule
violations such as inverted bounding boxes or unknown provider types.

The document path can be given as an argument or through the
GEOCONF_CONFIG environment variable.`,
		Example: `  geoconf validate config.yml              # One-shot validation
  geoconf validate config.yml --lint       # Include advisory findings
  geoconf validate config.yml --watch      # Re-validate on every save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, app)
		},
	}

	cmd.Flags().Bool("lint", false,
		"Report advisory findings in addition to hard validation")
	cmd.Flags().Bool("watch", false,
		"Watch a valid document and re-validate on changes")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, app application.Application) error {
	argPath := ""
	if len(args) > 0 {
		argPath = args[0]
	}
	lint, _ := cmd.Flags().GetBool("lint")
	watch, _ := cmd.Flags().GetBool("watch")

	path, err := docfile.Resolve(argPath)
	if err != nil {
		return err
	}

	notifier, err := notify.NewFromCommand(cmd)
	if err != nil {
		return err
	}

	doc, err := app.Document(path)
	if err != nil {
		return reportInvalid(cmd, notifier, path, err)
	}

	message := fmt.Sprintf("%s is valid: %d resources, %d providers",
		path, len(doc.Resources), doc.ProviderCount())
	_ = notifier.Success(message, notify.Contexts.Validation(path, true, ""))

	if lint {
		if err := reportFindings(cmd, doc); err != nil {
			return err
		}
	}

	if watch {
		return watchDocument(cmd, notifier, path, lint)
	}

	return nil
}

// reportInvalid prints every violation and returns a concise error for the
// exit path, so the failure detail is not printed twice.
func reportInvalid(cmd *cobra.Command, notifier *notify.Notifier, path string, err error) error {
	_ = notifier.Error(fmt.Sprintf("%s failed validation", path),
		notify.Contexts.Validation(path, false, hints.ClassifyError(err)))

	var violations errors.ValidationErrors
	if stderrors.As(err, &violations) {
		for _, violation := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", emoji.Error, violation)
		}
		return fmt.Errorf("%d validation error(s) in %s", len(violations), path)
	}

	return err
}

// reportFindings prints advisory lint findings for a valid document.
func reportFindings(cmd *cobra.Command, doc *document.Document) error {
	findings := doc.Lint()
	if len(findings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s No lint findings\n", emoji.Success)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d lint finding(s):\n", emoji.Warning, len(findings))

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	return output.FormatFindings(findings, globalFlags)
}

// watchDocument blocks re-validating the document on every change until the
// command context is cancelled.
func watchDocument(cmd *cobra.Command, notifier *notify.Notifier, path string, lint bool) error {
	ctx := cmd.Context()

	watcher, err := geoconf.Watch(ctx, path,
		geoconf.WithUpdateHook(func(_, newDoc *document.Document) {
			message := fmt.Sprintf("%s is valid: %d resources, %d providers",
				path, len(newDoc.Resources), newDoc.ProviderCount())
			_ = notifier.Alert(alerts.NewSuccess(message))
			if lint {
				for _, finding := range newDoc.Lint() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", emoji.Warning, finding)
				}
			}
		}),
		geoconf.WithErrorHook(func(err error) {
			_ = notifier.Alert(alerts.NewError(fmt.Sprintf("%s failed validation", path)))
			var violations errors.ValidationErrors
			if stderrors.As(err, &violations) {
				for _, violation := range violations {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", emoji.Error, violation)
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", emoji.Error, err)
			}
		}),
	)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", path)
	<-ctx.Done()
	return nil
}
