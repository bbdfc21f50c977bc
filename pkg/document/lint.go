package document

import (
	"fmt"
)

// Finding is a single advisory lint result. Findings point at suspicious but
// legal settings; they never fail a load.
type Finding struct {
	Path    string `json:"path" yaml:"path"`       // dotted path to the setting
	Message string `json:"message" yaml:"message"` // human-readable advice
}

// String returns the finding in "path: message" form.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Message)
}

// Lint inspects the document for settings that are valid but likely
// mistakes. It assumes the document already passed Validate, so it does not
// re-check hard invariants.
func (d *Document) Lint() []Finding {
	var findings []Finding

	for _, key := range d.ResourceKeys() {
		res := d.Resources[key]
		findings = append(findings, lintResource(fmt.Sprintf("resources.%s", key), &res)...)
	}

	return findings
}

// lintResource checks a single resource definition.
func lintResource(path string, r *Resource) []Finding {
	var findings []Finding

	// CRS84 coordinates are longitude/latitude degrees, so values outside
	// the valid ranges almost always mean swapped axes or a wrong CRS.
	s := r.Extents.Spatial
	crs := s.CRS
	if crs == "" {
		crs = DefaultCRS
	}
	if crs == DefaultCRS && len(s.Bbox) == 4 {
		if s.Bbox.MinX() < -180 || s.Bbox.MaxX() > 180 {
			findings = append(findings, Finding{
				Path:    path + ".extents.spatial.bbox",
				Message: fmt.Sprintf("longitude outside [-180, 180] for CRS84: [%g, %g]", s.Bbox.MinX(), s.Bbox.MaxX()),
			})
		}
		if s.Bbox.MinY() < -90 || s.Bbox.MaxY() > 90 {
			findings = append(findings, Finding{
				Path:    path + ".extents.spatial.bbox",
				Message: fmt.Sprintf("latitude outside [-90, 90] for CRS84: [%g, %g]", s.Bbox.MinY(), s.Bbox.MaxY()),
			})
		}
	}

	if r.Extents.Temporal == nil {
		findings = append(findings, Finding{
			Path:    path + ".extents",
			Message: "no temporal extent; temporal filtering will be unavailable",
		})
	}

	// The server answers queries of a given type with the first matching
	// provider, so later duplicates are dead configuration.
	firstOfType := make(map[ProviderType]int)
	for i := range r.Providers {
		p := &r.Providers[i]
		providerPath := fmt.Sprintf("%s.providers[%d]", path, i)

		if first, ok := firstOfType[p.Type]; ok {
			findings = append(findings, Finding{
				Path:    providerPath + ".type",
				Message: fmt.Sprintf("duplicate provider type %q; the provider at index %d takes precedence", p.Type, first),
			})
		} else {
			firstOfType[p.Type] = i
		}

		if p.Name != "" && !KnownBackend(p.Name) {
			findings = append(findings, Finding{
				Path:    providerPath + ".name",
				Message: fmt.Sprintf("backend %q is not a known provider implementation", p.Name),
			})
		}
	}

	return findings
}
