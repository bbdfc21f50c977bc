package document

// Provider is a backend adapter that fulfills read requests for a
// resource from an underlying data source. The Type tag selects the
// access model; Name selects the backend implementation.
type Provider struct {
	Type      ProviderType   `json:"type" yaml:"type"`                               // Access model tag (required)
	Name      string         `json:"name" yaml:"name"`                               // Backend implementation name (required)
	Data      string         `json:"data" yaml:"data"`                               // Source location: local path or URL (required)
	IDField   string         `json:"id_field,omitempty" yaml:"id_field,omitempty"`   // Attribute holding feature identifiers
	TimeField string         `json:"time_field,omitempty" yaml:"time_field,omitempty"` // Attribute holding timestamps
	Format    *Format        `json:"format,omitempty" yaml:"format,omitempty"`       // Native output format
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty"`     // Backend-specific settings, passed through untouched
}

// Format describes an output format by name and media type.
type Format struct {
	Name     string `json:"name" yaml:"name"`         // Format name (e.g. GTiff, GeoJSON)
	Mimetype string `json:"mimetype" yaml:"mimetype"` // Media type (e.g. application/x-geotiff)
}

// ProviderType tags the data-access model of a provider. The consuming
// server rejects unrecognized types at startup, so the loader does the
// same.
type ProviderType string

// Recognized provider types.
const (
	ProviderTypeFeature  ProviderType = "feature"  // Discrete vector features
	ProviderTypeCoverage ProviderType = "coverage" // Gridded/raster data
	ProviderTypeTile     ProviderType = "tile"     // Pre-rendered tile sets
	ProviderTypeMap      ProviderType = "map"      // Rendered map images
	ProviderTypeEDR      ProviderType = "edr"      // Environmental data retrieval queries
	ProviderTypeSTAC     ProviderType = "stac"     // SpatioTemporal Asset Catalog trees
)

// ProviderTypes lists the recognized provider types.
var ProviderTypes = []ProviderType{
	ProviderTypeFeature,
	ProviderTypeCoverage,
	ProviderTypeTile,
	ProviderTypeMap,
	ProviderTypeEDR,
	ProviderTypeSTAC,
}

// String returns the string representation of a ProviderType.
func (pt ProviderType) String() string {
	return string(pt)
}

// Valid reports whether the type is one of the recognized values.
func (pt ProviderType) Valid() bool {
	for _, t := range ProviderTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// knownBackends lists backend implementation names shipped with common
// servers. Unknown names are a lint finding, not a validation error,
// since deployments may register their own plugins.
var knownBackends = map[string]bool{
	"CSV":            true,
	"Elasticsearch":  true,
	"ESRI":           true,
	"FlatGeobuf":     true,
	"GDAL":           true,
	"GeoJSON":        true,
	"MongoDB":        true,
	"MVT":            true,
	"OGR":            true,
	"PostgreSQL":     true,
	"SensorThings":   true,
	"Socrata":        true,
	"SQLiteGPKG":     true,
	"TinyDB":         true,
	"WMSFacade":      true,
	"rasterio":       true,
	"xarray":         true,
	"xarray-edr":     true,
}

// KnownBackend reports whether the backend name ships with common
// servers.
func KnownBackend(name string) bool {
	return knownBackends[name]
}

// HasFormat reports whether the provider declares an output format.
func (p *Provider) HasFormat() bool {
	return p.Format != nil
}

// copy returns a deep copy of the provider.
func (p Provider) copy() Provider {
	out := p
	if p.Format != nil {
		f := *p.Format
		out.Format = &f
	}
	if p.Options != nil {
		out.Options = make(map[string]any, len(p.Options))
		for k, v := range p.Options {
			out.Options[k] = v
		}
	}
	return out
}
