package document

// Metadata describes the service itself: what it is, who runs it, and
// how to reach them. The nested blocks follow the wire format.
type Metadata struct {
	Identification Identification `json:"identification" yaml:"identification"` // Title, description, keywords
	License        License        `json:"license" yaml:"license"`               // Data license
	Provider       Organization   `json:"provider" yaml:"provider"`             // Operating organization
	Contact        Contact        `json:"contact" yaml:"contact"`               // Point of contact
}

// Identification holds the human-facing description of the service.
type Identification struct {
	Title          string   `json:"title" yaml:"title"`                                         // Service title (required)
	Description    string   `json:"description" yaml:"description"`                             // Free-text description (required)
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`               // Keyword set
	KeywordsType   string   `json:"keywords_type,omitempty" yaml:"keywords_type,omitempty"`     // Keyword vocabulary hint (e.g. "theme")
	TermsOfService string   `json:"terms_of_service,omitempty" yaml:"terms_of_service,omitempty"` // Terms-of-service URL
	URL            string   `json:"url,omitempty" yaml:"url,omitempty"`                         // Informational URL
}

// License names the license the served data is published under.
type License struct {
	Name string `json:"name" yaml:"name"`                   // License name (required)
	URL  string `json:"url,omitempty" yaml:"url,omitempty"` // License text URL
}

// Organization identifies the operating organization.
type Organization struct {
	Name string `json:"name" yaml:"name"`                   // Organization name (required)
	URL  string `json:"url,omitempty" yaml:"url,omitempty"` // Organization URL
}

// Contact holds point-of-contact details. All fields are optional;
// the email and URL are checked for well-formedness when present.
type Contact struct {
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	Position        string `json:"position,omitempty" yaml:"position,omitempty"`
	Address         string `json:"address,omitempty" yaml:"address,omitempty"`
	City            string `json:"city,omitempty" yaml:"city,omitempty"`
	StateOrProvince string `json:"stateorprovince,omitempty" yaml:"stateorprovince,omitempty"`
	PostalCode      string `json:"postalcode,omitempty" yaml:"postalcode,omitempty"`
	Country         string `json:"country,omitempty" yaml:"country,omitempty"`
	Phone           string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Fax             string `json:"fax,omitempty" yaml:"fax,omitempty"`
	Email           string `json:"email,omitempty" yaml:"email,omitempty"`
	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
	Hours           string `json:"hours,omitempty" yaml:"hours,omitempty"`
	Instructions    string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Role            string `json:"role,omitempty" yaml:"role,omitempty"`
}

// copy returns a deep copy of the metadata section.
func (m Metadata) copy() Metadata {
	out := m
	if m.Identification.Keywords != nil {
		out.Identification.Keywords = append([]string(nil), m.Identification.Keywords...)
	}
	return out
}
