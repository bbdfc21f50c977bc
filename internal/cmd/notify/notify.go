// Package notify provides a unified API for alerts and hints in the CLI.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/internal/cmd/alerts"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/hints"
	"github.com/geoatlas/geoconf/internal/cmd/output"
)

// Notifier is the main public API for sending alerts and displaying hints.
type Notifier struct {
	alertWriter  alerts.Writer
	hintRegistry *hints.Registry
	config       Config
}

// Config controls notification behavior.
type Config struct {
	OutputFormat string    // "table", "json", "yaml"
	ShowHints    bool      // Whether to show hints
	ShowAlerts   bool      // Whether to show alerts
	MaxHints     int       // Maximum number of hints to show
	AlertWriter  io.Writer // Where to write alerts (default: stderr)
	HintWriter   io.Writer // Where to write hints (default: stdout)
	UseColor     bool      // Whether to use colored output
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		OutputFormat: "auto", // Will be detected
		ShowHints:    true,
		ShowAlerts:   true,
		MaxHints:     1, // Show only the most valuable hint
		AlertWriter:  os.Stderr,
		HintWriter:   os.Stdout,
		UseColor:     true,
	}
}

// New creates a new Notifier with the given configuration.
func New(config Config) *Notifier {
	format := detectOutputFormat(config.OutputFormat)
	alertWriter := alerts.NewFormatWriter(config.AlertWriter, format)

	// Set up hint registry with geoconf providers
	hintRegistry := hints.NewRegistry().WithConfig(hints.RegistryConfig{
		MaxHints: config.MaxHints,
		Enabled:  config.ShowHints,
	})
	hints.RegisterGeoconfProviders(hintRegistry)

	return &Notifier{
		alertWriter:  alertWriter,
		hintRegistry: hintRegistry,
		config:       config,
	}
}

// NewFromCommand creates a Notifier configured from a Cobra command.
func NewFromCommand(cmd *cobra.Command) (*Notifier, error) {
	config := DefaultConfig()

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse global flags: %w", err)
	}

	config.OutputFormat = globalFlags.Output
	config.ShowHints = !globalFlags.Quiet && !isCI()
	config.UseColor = !globalFlags.NoColor && isTerminal(os.Stdout)

	return New(config), nil
}

// Alert sends an alert notification.
func (n *Notifier) Alert(alert *alerts.Alert) error {
	if !n.config.ShowAlerts {
		return nil
	}

	return n.alertWriter.WriteAlert(alert)
}

// Success sends a success alert with optional hints.
func (n *Notifier) Success(message string, ctx hints.Context) error {
	return n.AlertWithHints(alerts.NewSuccess(message), ctx)
}

// Error sends an error alert with optional hints.
func (n *Notifier) Error(message string, ctx hints.Context) error {
	return n.AlertWithHints(alerts.NewError(message), ctx)
}

// Warning sends a warning alert with optional hints.
func (n *Notifier) Warning(message string, ctx hints.Context) error {
	return n.AlertWithHints(alerts.NewWarning(message), ctx)
}

// Info sends an info alert with optional hints.
func (n *Notifier) Info(message string, ctx hints.Context) error {
	return n.AlertWithHints(alerts.NewInfo(message), ctx)
}

// AlertWithHints sends an alert and displays contextual hints.
func (n *Notifier) AlertWithHints(alert *alerts.Alert, ctx hints.Context) error {
	if err := n.Alert(alert); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}

	if n.config.ShowHints {
		hintList := n.hintRegistry.GetHints(ctx)
		if len(hintList) > 0 {
			format := detectOutputFormat(n.config.OutputFormat)
			return hints.Display(n.config.HintWriter, format, hintList)
		}
	}

	return nil
}

// Hints displays contextual hints without an alert.
func (n *Notifier) Hints(ctx hints.Context) error {
	if !n.config.ShowHints {
		return nil
	}

	hintList := n.hintRegistry.GetHints(ctx)
	if len(hintList) == 0 {
		return nil
	}

	format := detectOutputFormat(n.config.OutputFormat)
	return hints.Display(n.config.HintWriter, format, hintList)
}

// AddHintProvider registers a custom hint provider.
func (n *Notifier) AddHintProvider(provider hints.Provider) {
	n.hintRegistry.Register(provider)
}

// AddHintFunc registers a function as a hint provider.
func (n *Notifier) AddHintFunc(name string, fn func(hints.Context) []*hints.Hint) {
	n.hintRegistry.RegisterFunc(name, fn)
}

// detectOutputFormat determines the output format from a string.
func detectOutputFormat(formatStr string) output.Format {
	if formatStr == "" || formatStr == "auto" {
		return output.DetectFormat("")
	}
	return output.Format(strings.ToLower(formatStr))
}

// isTerminal checks if the given writer is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// isCI detects if running in a CI/CD environment.
func isCI() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"BUILDKITE",
		"TRAVIS",
		"CIRCLECI",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}

	return false
}
