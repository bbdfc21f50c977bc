// Package inspect provides the document summary command.
package inspect

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/output"
	"github.com/geoatlas/geoconf/pkg/document"
)

// summary is the flattened view of a document printed by inspect. Field
// order is presentation order in table output.
type summary struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
	Bind        string `json:"bind" yaml:"bind"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	PageLimit   int    `json:"page_limit" yaml:"page_limit"`
	CORS        bool   `json:"cors" yaml:"cors"`
	Resources   int    `json:"resources" yaml:"resources"`
	Providers   int    `json:"providers" yaml:"providers"`
	Backends    string `json:"backends,omitempty" yaml:"backends,omitempty"`
}

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect [FILE]",
		GroupID: "core",
		Short:   "Summarize a configuration document",
		Long: `Inspect loads a configuration document and prints a one-screen summary
of the service it describes: identification, network binding, response
defaults, and resource counts.`,
		Example: `  geoconf inspect config.yml
  geoconf inspect config.yml -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, app)
		},
	}
}

func runInspect(cmd *cobra.Command, args []string, app application.Application) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := app.Document(path)
	if err != nil {
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	return output.FormatAny(summarize(doc), globalFlags)
}

// summarize flattens the parts of a document an operator asks about first.
func summarize(doc *document.Document) summary {
	return summary{
		Title:       doc.Metadata.Identification.Title,
		Description: doc.Metadata.Identification.Description,
		URL:         doc.Server.URL,
		Bind:        doc.Server.Bind.Address(),
		LogLevel:    string(doc.Logging.Level),
		PageLimit:   doc.Server.PageLimit(),
		CORS:        doc.Server.CorsEnabled(),
		Resources:   len(doc.Resources),
		Providers:   doc.ProviderCount(),
		Backends:    strings.Join(backends(doc), ", "),
	}
}

// backends returns the distinct provider backend names, sorted.
func backends(doc *document.Document) []string {
	seen := make(map[string]struct{})
	for _, res := range doc.Resources {
		for _, p := range res.Providers {
			if p.Name != "" {
				seen[p.Name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
