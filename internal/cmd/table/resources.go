// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strings"

	"github.com/geoatlas/geoconf/pkg/document"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ResourcesToTableData converts the document's resources to table format,
// one row per resource in key order.
func ResourcesToTableData(doc *document.Document, wide bool) Data {
	headers := []string{"Key", "Title", "Providers", "Bbox"}
	if wide {
		headers = append(headers, "CRS", "Temporal", "Keywords")
	}

	keys := doc.ResourceKeys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		res := doc.Resources[key]
		row := []string{
			key,
			Truncate(res.Title, 40),
			BuildProvidersString(res.Providers),
			FormatBbox(res.Extents.Spatial.Bbox),
		}

		if wide {
			keywords := strings.Join(res.Keywords, ", ")
			if keywords == "" {
				keywords = "-"
			}
			row = append(row,
				ShortCRS(res.Extents.Spatial.CRS),
				FormatTemporal(res.Extents.Temporal),
				keywords,
			)
		}

		rows = append(rows, row)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// ProvidersToTableData converts a resource's providers to table format.
func ProvidersToTableData(providers []document.Provider) Data {
	headers := []string{"Type", "Backend", "Data", "Format"}

	rows := make([][]string, 0, len(providers))
	for i := range providers {
		p := &providers[i]

		format := "-"
		if p.HasFormat() {
			format = fmt.Sprintf("%s (%s)", p.Format.Name, p.Format.Mimetype)
		}

		rows = append(rows, []string{
			p.Type.String(),
			p.Name,
			Truncate(p.Data, 60),
			format,
		})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// FindingsToTableData converts lint findings to table format.
func FindingsToTableData(findings []document.Finding) Data {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Path, f.Message})
	}

	return Data{
		Headers: []string{"Path", "Finding"},
		Rows:    rows,
	}
}

// BuildProvidersString creates a comma-separated list of type:backend pairs.
func BuildProvidersString(providers []document.Provider) string {
	if len(providers) == 0 {
		return "-"
	}

	parts := make([]string, len(providers))
	for i := range providers {
		parts[i] = fmt.Sprintf("%s:%s", providers[i].Type, providers[i].Name)
	}
	return strings.Join(parts, ", ")
}

// FormatBbox renders a bounding box as two corner pairs.
func FormatBbox(b document.Bbox) string {
	if len(b) != 4 {
		return "-"
	}
	return fmt.Sprintf("%g,%g %g,%g", b.MinX(), b.MinY(), b.MaxX(), b.MaxY())
}

// FormatTemporal renders a temporal interval in ISO interval notation,
// with ".." standing in for an open end.
func FormatTemporal(t *document.TemporalExtent) string {
	if t == nil {
		return "-"
	}

	begin, end := "..", ".."
	if t.Begin != nil {
		begin = t.Begin.Format("2006-01-02")
	}
	if t.End != nil {
		end = t.End.Format("2006-01-02")
	}
	return begin + "/" + end
}

// ShortCRS trims the registry URL prefix from a CRS identifier, leaving
// the recognizable tail such as CRS84.
func ShortCRS(crs string) string {
	if crs == "" {
		return "-"
	}
	if i := strings.LastIndex(crs, "/"); i >= 0 && i+1 < len(crs) {
		return crs[i+1:]
	}
	return crs
}

// Truncate shortens s to at most max characters, appending an ellipsis
// when content was cut. Empty strings render as a dash.
func Truncate(s string, max int) string {
	if s == "" {
		return "-"
	}
	if len(s) <= max || max < 4 {
		return s
	}
	return s[:max-3] + "..."
}
