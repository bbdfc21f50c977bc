// Package check provides the deployment probing command.
package check

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/hints"
	"github.com/geoatlas/geoconf/internal/cmd/notify"
	"github.com/geoatlas/geoconf/internal/cmd/output"
	"github.com/geoatlas/geoconf/internal/probe"
)

// endpointRow is the per-endpoint presentation of a probe result.
type endpointRow struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Status   string `json:"status" yaml:"status"`
	Latency  string `json:"latency" yaml:"latency"`
	Attempts int    `json:"attempts" yaml:"attempts"`
}

// NewCommand creates the check command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [FILE]",
		GroupID: "management",
		Short:   "Probe a deployment against its document",
		Long: `Check requests the landing page, the collections listing, and every
resource's collection endpoint of a running deployment, then reports
per-endpoint status and latency.

The base URL comes from the document's server.url unless --url
overrides it.`,
		Example: `  geoconf check config.yml                            # Probe server.url
  geoconf check config.yml --url http://staging:5000  # Probe another host
  geoconf check config.yml --tries 1                  # Fail fast`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, app)
		},
	}

	cmd.Flags().String("url", "",
		"Base URL to probe instead of the document's server.url")
	cmd.Flags().Uint("tries", 0,
		"Attempts per endpoint before giving up")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, app application.Application) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	baseURL, _ := cmd.Flags().GetString("url")
	tries, _ := cmd.Flags().GetUint("tries")

	doc, err := app.Document(path)
	if err != nil {
		return err
	}

	notifier, err := notify.NewFromCommand(cmd)
	if err != nil {
		return err
	}

	var opts []probe.Option
	if tries > 0 {
		opts = append(opts, probe.WithMaxTries(tries))
	}

	report, err := probe.Probe(cmd.Context(), baseURL, doc, opts...)
	if err != nil {
		return err
	}

	rows := make([]endpointRow, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, endpointRow{
			Endpoint: result.Path,
			Status:   statusText(result),
			Latency:  result.Latency.Round(time.Millisecond).String(),
			Attempts: result.Attempts,
		})
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	if err := output.FormatAny(rows, globalFlags); err != nil {
		return err
	}

	if failed := report.Failed(); failed > 0 {
		_ = notifier.Error(
			fmt.Sprintf("%d of %d endpoints failed on %s", failed, len(report.Results), report.BaseURL),
			notify.Contexts.Check(path, false, errorType(report)),
		)
		return fmt.Errorf("%d of %d endpoints failed", failed, len(report.Results))
	}

	_ = notifier.Success(
		fmt.Sprintf("All %d endpoints OK on %s in %s",
			len(report.Results), report.BaseURL, report.Elapsed.Round(time.Millisecond)),
		notify.Contexts.Check(path, true, ""),
	)
	return nil
}

// statusText renders the status column: the HTTP status line, or the
// failure class when no response arrived.
func statusText(result probe.EndpointResult) string {
	if result.Status > 0 {
		return fmt.Sprintf("%d %s", result.Status, http.StatusText(result.Status))
	}
	return "unreachable"
}

// errorType classifies a failed report for hint selection. Transport
// failures and 5xx responses leave an error on the result; 4xx failures
// carry only the status code.
func errorType(report *probe.Report) string {
	for _, result := range report.Results {
		if result.Err != nil {
			return hints.ErrorTypeServerUnavailable
		}
	}
	return hints.ErrorTypeProbeFailed
}
