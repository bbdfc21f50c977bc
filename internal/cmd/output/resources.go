// Package output provides common output formatting utilities for CLI commands.
package output

import (
	"os"

	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/globals"
	"github.com/geoatlas/geoconf/internal/cmd/table"
	"github.com/geoatlas/geoconf/pkg/document"
)

// FormatResources handles the common pattern of formatting resources for output.
// This encapsulates the switch logic for different output formats.
func FormatResources(doc *document.Document, wide bool, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.ResourcesToTableData(doc, wide)
	default:
		outputData = doc.Resources
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatProviders handles the common pattern of formatting a resource's providers for output.
func FormatProviders(providers []document.Provider, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.ProvidersToTableData(providers)
	default:
		outputData = providers
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatFindings handles the common pattern of formatting lint findings for output.
func FormatFindings(findings []document.Finding, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.FindingsToTableData(findings)
	default:
		outputData = findings
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny formats arbitrary data using the global output format.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}
