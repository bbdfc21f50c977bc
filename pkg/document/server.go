package document

import (
	"net"
	"strconv"
)

// Server holds the network binding and response defaults for the API
// server consuming the document.
type Server struct {
	Bind        Bind     `json:"bind" yaml:"bind"`                                 // Listen address
	URL         string   `json:"url" yaml:"url"`                                   // Advertised base URL (absolute http/https)
	Mimetype    string   `json:"mimetype,omitempty" yaml:"mimetype,omitempty"`     // Default response media type
	Encoding    string   `json:"encoding,omitempty" yaml:"encoding,omitempty"`     // Default character encoding
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`     // Default locale tag
	Cors        *bool    `json:"cors,omitempty" yaml:"cors,omitempty"`             // Cross-origin requests (default false)
	PrettyPrint *bool    `json:"pretty_print,omitempty" yaml:"pretty_print,omitempty"` // Indented response bodies (default false)
	Limit       *int     `json:"limit,omitempty" yaml:"limit,omitempty"`           // Maximum page size for listings (default 10)
	Map         *Basemap `json:"map,omitempty" yaml:"map,omitempty"`               // Basemap tile source for web views

	// OGCSchemasLocation points at a local copy of the OGC schemas tree.
	// Empty means schemas are referenced from their canonical remote URLs.
	OGCSchemasLocation string `json:"ogc_schemas_location,omitempty" yaml:"ogc_schemas_location,omitempty"`
}

// Bind is the listen address of the server.
type Bind struct {
	Host string `json:"host" yaml:"host"` // Interface to bind
	Port int    `json:"port" yaml:"port"` // TCP port (1-65535)
}

// Address returns the bind address in host:port form.
func (b Bind) Address() string {
	return net.JoinHostPort(b.Host, strconv.Itoa(b.Port))
}

// Basemap describes the tile source rendered behind web map views.
type Basemap struct {
	URL         string `json:"url" yaml:"url"`                 // Tile URL template
	Attribution string `json:"attribution" yaml:"attribution"` // Attribution text or HTML
}

// CorsEnabled reports whether cross-origin requests are allowed.
// An absent flag means disabled.
func (s *Server) CorsEnabled() bool {
	return s.Cors != nil && *s.Cors
}

// PrettyPrintEnabled reports whether responses are indented.
// An absent flag means disabled.
func (s *Server) PrettyPrintEnabled() bool {
	return s.PrettyPrint != nil && *s.PrettyPrint
}

// PageLimit returns the pagination cap, falling back to the default
// when the document does not set one.
func (s *Server) PageLimit() int {
	if s.Limit == nil {
		return DefaultLimit
	}
	return *s.Limit
}

// copy returns a deep copy of the server section.
func (s Server) copy() Server {
	out := s
	if s.Cors != nil {
		v := *s.Cors
		out.Cors = &v
	}
	if s.PrettyPrint != nil {
		v := *s.PrettyPrint
		out.PrettyPrint = &v
	}
	if s.Limit != nil {
		v := *s.Limit
		out.Limit = &v
	}
	if s.Map != nil {
		v := *s.Map
		out.Map = &v
	}
	return out
}
