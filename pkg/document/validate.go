package document

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/geoatlas/geoconf/pkg/errors"
)

// resourceKeyPattern restricts resource identifiers to characters that are
// safe in both URL paths and file names.
var resourceKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validate checks every semantic rule the document must satisfy and collects
// all violations into a single error, so one load attempt reports the full
// list. A nil return means the document is ready to serve.
func (d *Document) Validate() error {
	var errs []error
	errs = append(errs, d.Server.validate()...)
	errs = append(errs, d.Logging.validate()...)
	errs = append(errs, d.Metadata.validate()...)
	errs = append(errs, d.validateResources()...)
	return errors.NewValidationErrors(errs...)
}

// validate checks the server block.
func (s *Server) validate() []error {
	var errs []error

	if s.Bind.Host == "" {
		errs = append(errs, errors.NewValidationError("server.bind.host", s.Bind.Host, "host is required"))
	}
	if s.Bind.Port < 1 || s.Bind.Port > 65535 {
		errs = append(errs, errors.NewValidationError("server.bind.port", s.Bind.Port, "port must be between 1 and 65535"))
	}

	if s.URL == "" {
		errs = append(errs, errors.NewValidationError("server.url", s.URL, "url is required"))
	} else if err := checkServerURL(s.URL); err != nil {
		errs = append(errs, errors.NewValidationError("server.url", s.URL, err.Error()))
	}

	if s.Limit != nil && *s.Limit <= 0 {
		errs = append(errs, errors.NewValidationError("server.limit", *s.Limit, "page size limit must be positive"))
	}

	if s.Map != nil && s.Map.URL == "" {
		errs = append(errs, errors.NewValidationError("server.map.url", s.Map.URL, "url is required when a basemap is configured"))
	}

	return errs
}

// validate checks the logging block.
func (l *Logging) validate() []error {
	var errs []error

	if l.Level == "" {
		errs = append(errs, errors.NewValidationError("logging.level", l.Level, "level is required"))
	} else if !l.Level.Valid() {
		errs = append(errs, errors.NewValidationError("logging.level", l.Level,
			fmt.Sprintf("level must be one of: %s", joinLogLevels())))
	}

	return errs
}

// validate checks the metadata block.
func (m *Metadata) validate() []error {
	var errs []error

	if m.Identification.Title == "" {
		errs = append(errs, errors.NewValidationError("metadata.identification.title", m.Identification.Title, "title is required"))
	}
	if m.Identification.Description == "" {
		errs = append(errs, errors.NewValidationError("metadata.identification.description", m.Identification.Description, "description is required"))
	}
	if err := checkOptionalURL(m.Identification.URL); err != nil {
		errs = append(errs, errors.NewValidationError("metadata.identification.url", m.Identification.URL, err.Error()))
	}

	if m.License.Name == "" {
		errs = append(errs, errors.NewValidationError("metadata.license.name", m.License.Name, "name is required"))
	}
	if err := checkOptionalURL(m.License.URL); err != nil {
		errs = append(errs, errors.NewValidationError("metadata.license.url", m.License.URL, err.Error()))
	}

	if m.Provider.Name == "" {
		errs = append(errs, errors.NewValidationError("metadata.provider.name", m.Provider.Name, "name is required"))
	}
	if err := checkOptionalURL(m.Provider.URL); err != nil {
		errs = append(errs, errors.NewValidationError("metadata.provider.url", m.Provider.URL, err.Error()))
	}

	if m.Contact.Email != "" {
		if _, err := mail.ParseAddress(m.Contact.Email); err != nil {
			errs = append(errs, errors.NewValidationError("metadata.contact.email", m.Contact.Email, "email is not a valid address"))
		}
	}
	if err := checkOptionalURL(m.Contact.URL); err != nil {
		errs = append(errs, errors.NewValidationError("metadata.contact.url", m.Contact.URL, err.Error()))
	}

	return errs
}

// validateResources checks every resource in key order so repeated runs
// report violations in the same sequence.
func (d *Document) validateResources() []error {
	var errs []error

	for _, key := range d.ResourceKeys() {
		path := fmt.Sprintf("resources.%s", key)
		if !resourceKeyPattern.MatchString(key) {
			errs = append(errs, errors.NewValidationError(path, key,
				"key may only contain letters, digits, underscore, dot, and hyphen"))
		}
		res := d.Resources[key]
		errs = append(errs, res.validate(path)...)
	}

	return errs
}

// validate checks a single resource definition.
func (r *Resource) validate(path string) []error {
	var errs []error

	if !r.Type.Valid() {
		errs = append(errs, errors.NewValidationError(path+".type", r.Type,
			fmt.Sprintf("type must be one of: %s", joinResourceTypes())))
	}
	if r.Title == "" {
		errs = append(errs, errors.NewValidationError(path+".title", r.Title, "title is required"))
	}
	if r.Description == "" {
		errs = append(errs, errors.NewValidationError(path+".description", r.Description, "description is required"))
	}

	for i, link := range r.Links {
		linkPath := fmt.Sprintf("%s.links[%d]", path, i)
		if link.Href == "" {
			errs = append(errs, errors.NewValidationError(linkPath+".href", link.Href, "href is required"))
		} else if _, err := url.Parse(link.Href); err != nil {
			errs = append(errs, errors.NewValidationError(linkPath+".href", link.Href, "href is not a valid URL"))
		}
	}

	errs = append(errs, r.Extents.validate(path+".extents")...)

	if len(r.Providers) == 0 {
		errs = append(errs, errors.NewValidationError(path+".providers", nil, "at least one provider is required"))
	}
	for i := range r.Providers {
		providerPath := fmt.Sprintf("%s.providers[%d]", path, i)
		errs = append(errs, r.Providers[i].validate(providerPath)...)
	}

	return errs
}

// validate checks the spatial and temporal extents of a resource.
func (e *Extents) validate(path string) []error {
	var errs []error

	bbox := e.Spatial.Bbox
	if len(bbox) != 4 {
		errs = append(errs, errors.NewValidationError(path+".spatial.bbox", bbox,
			fmt.Sprintf("bbox must contain exactly 4 values, got %d", len(bbox))))
	} else {
		if bbox.MinX() > bbox.MaxX() {
			errs = append(errs, errors.NewValidationError(path+".spatial.bbox", bbox,
				"minimum x must not exceed maximum x"))
		}
		if bbox.MinY() > bbox.MaxY() {
			errs = append(errs, errors.NewValidationError(path+".spatial.bbox", bbox,
				"minimum y must not exceed maximum y"))
		}
	}

	if t := e.Temporal; t != nil && t.Begin != nil && t.End != nil {
		if t.End.Before(t.Begin.Time) {
			errs = append(errs, errors.NewValidationError(path+".temporal", nil,
				fmt.Sprintf("end %s precedes begin %s",
					t.End.Format(time.RFC3339), t.Begin.Format(time.RFC3339))))
		}
	}

	return errs
}

// validate checks a single provider definition.
func (p *Provider) validate(path string) []error {
	var errs []error

	if !p.Type.Valid() {
		errs = append(errs, errors.NewValidationError(path+".type", p.Type,
			fmt.Sprintf("type must be one of: %s", joinProviderTypes())))
	}
	if p.Name == "" {
		errs = append(errs, errors.NewValidationError(path+".name", p.Name, "backend name is required"))
	}

	if p.Data == "" {
		errs = append(errs, errors.NewValidationError(path+".data", p.Data, "data source is required"))
	} else if strings.Contains(p.Data, "://") {
		if err := checkAbsoluteURL(p.Data); err != nil {
			errs = append(errs, errors.NewValidationError(path+".data", p.Data, err.Error()))
		}
	}

	if p.Format != nil {
		if p.Format.Name == "" {
			errs = append(errs, errors.NewValidationError(path+".format.name", p.Format.Name, "name is required"))
		}
		if p.Format.Mimetype == "" {
			errs = append(errs, errors.NewValidationError(path+".format.mimetype", p.Format.Mimetype, "mimetype is required"))
		}
	}

	return errs
}

// checkAbsoluteURL verifies that raw parses as an absolute URL with a scheme
// and host. Any scheme is accepted, so connection-string style data sources
// such as postgresql:// pass.
func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL with scheme and host")
	}
	return nil
}

// checkServerURL is like checkAbsoluteURL but additionally requires an http
// or https scheme, since the value is served back to API clients as the
// public base URL.
func checkServerURL(raw string) error {
	if err := checkAbsoluteURL(raw); err != nil {
		return err
	}
	u, _ := url.Parse(raw)
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

// checkOptionalURL is like checkAbsoluteURL but treats the empty string as
// unset.
func checkOptionalURL(raw string) error {
	if raw == "" {
		return nil
	}
	return checkAbsoluteURL(raw)
}

// joinLogLevels returns the valid log levels as a comma-separated list.
func joinLogLevels() string {
	names := make([]string, len(LogLevels))
	for i, l := range LogLevels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

// joinResourceTypes returns the valid resource types as a comma-separated list.
func joinResourceTypes() string {
	names := make([]string, len(ResourceTypes))
	for i, t := range ResourceTypes {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// joinProviderTypes returns the valid provider types as a comma-separated list.
func joinProviderTypes() string {
	names := make([]string, len(ProviderTypes))
	for i, t := range ProviderTypes {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
