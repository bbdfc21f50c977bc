package document

// Defaults applied by ApplyDefaults when the document omits a value.
const (
	DefaultLimit    = 10                               // Pagination cap
	DefaultMimetype = "application/json; charset=UTF-8" // Response media type
	DefaultEncoding = "utf-8"                          // Character encoding
	DefaultLanguage = "en-US"                          // Locale tag
)

// ApplyDefaults fills in documented default values for optional fields
// the document leaves unset. Options that the upstream sample ships
// commented out (cors, ogc_schemas_location) default to off rather than
// being treated as absent, so their state is always explicit after a
// load.
func (d *Document) ApplyDefaults() {
	d.Server.applyDefaults()
	for key, res := range d.Resources {
		res.applyDefaults()
		d.Resources[key] = res
	}
}

func (s *Server) applyDefaults() {
	if s.Mimetype == "" {
		s.Mimetype = DefaultMimetype
	}
	if s.Encoding == "" {
		s.Encoding = DefaultEncoding
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Cors == nil {
		off := false
		s.Cors = &off
	}
	if s.PrettyPrint == nil {
		off := false
		s.PrettyPrint = &off
	}
	if s.Limit == nil {
		limit := DefaultLimit
		s.Limit = &limit
	}
	// OGCSchemasLocation stays empty by default: remote schemas.
}

func (r *Resource) applyDefaults() {
	if r.Extents.Spatial.CRS == "" {
		r.Extents.Spatial.CRS = DefaultCRS
	}
	if r.Extents.Temporal != nil && r.Extents.Temporal.TRS == "" {
		r.Extents.Temporal.TRS = DefaultTRS
	}
}
