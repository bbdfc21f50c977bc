package document

// Resource is a named geospatial dataset exposed by the API server.
// The map key in Document.Resources is its unique, URL-safe identifier.
type Resource struct {
	Type        ResourceType `json:"type" yaml:"type"`                             // Resource kind tag
	Title       string       `json:"title" yaml:"title"`                           // Display title (required)
	Description string       `json:"description" yaml:"description"`               // Free-text description (required)
	Keywords    []string     `json:"keywords,omitempty" yaml:"keywords,omitempty"` // Keyword set
	Links       []Link       `json:"links,omitempty" yaml:"links,omitempty"`       // Related links, in document order
	Extents     Extents      `json:"extents" yaml:"extents"`                       // Spatial and optional temporal extent
	Providers   []Provider   `json:"providers" yaml:"providers"`                   // Data providers, in document order (at least one)
}

// ResourceType tags the kind of a resource.
type ResourceType string

// Recognized resource types.
const (
	ResourceTypeCollection ResourceType = "collection" // A dataset served under /collections
)

// ResourceTypes lists the recognized resource types.
var ResourceTypes = []ResourceType{
	ResourceTypeCollection,
}

// String returns the string representation of a ResourceType.
func (rt ResourceType) String() string {
	return string(rt)
}

// Valid reports whether the type is one of the recognized values.
func (rt ResourceType) Valid() bool {
	for _, t := range ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Link is a related-resource reference attached to a resource.
type Link struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`         // Media type of the target
	Rel      string `json:"rel,omitempty" yaml:"rel,omitempty"`           // Link relation
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`       // Human-readable title
	Href     string `json:"href" yaml:"href"`                             // Target URL (required)
	Hreflang string `json:"hreflang,omitempty" yaml:"hreflang,omitempty"` // Language of the target
}

// copy returns a deep copy of the resource.
func (r Resource) copy() Resource {
	out := r
	if r.Keywords != nil {
		out.Keywords = append([]string(nil), r.Keywords...)
	}
	if r.Links != nil {
		out.Links = append([]Link(nil), r.Links...)
	}
	out.Extents = r.Extents.copy()
	if r.Providers != nil {
		out.Providers = make([]Provider, len(r.Providers))
		for i, p := range r.Providers {
			out.Providers[i] = p.copy()
		}
	}
	return out
}
