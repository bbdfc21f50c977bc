// Package document defines the typed model of a geospatial API server
// configuration document and the loader that turns YAML into it.
//
// A document describes everything the server needs before it accepts its
// first request: the network binding, response defaults, service metadata,
// and a mapping of named resources to their spatial/temporal extents and
// data providers. The document is parsed once, validated fail-fast, and
// treated as immutable afterwards.
//
// Example usage:
//
//	doc, err := document.Load("config.yml")
//	if err != nil {
//	    return err
//	}
//	for _, key := range doc.ResourceKeys() {
//	    res, _ := doc.Resource(key)
//	    fmt.Println(key, res.Title)
//	}
package document

import (
	"sort"

	"github.com/geoatlas/geoconf/pkg/errors"
)

// Document is the root of a configuration document. The four top-level
// sections mirror the wire format: server, logging, metadata, resources.
type Document struct {
	Server    Server              `json:"server" yaml:"server"`       // Network binding and response defaults
	Logging   Logging             `json:"logging" yaml:"logging"`     // Severity level and optional destination
	Metadata  Metadata            `json:"metadata" yaml:"metadata"`   // Service identification, license, provider, contact
	Resources map[string]Resource `json:"resources" yaml:"resources"` // Named datasets keyed by URL-safe identifier
}

// Resource returns the resource with the given key.
func (d *Document) Resource(key string) (Resource, error) {
	res, ok := d.Resources[key]
	if !ok {
		return Resource{}, errors.NewNotFoundError("resource", key)
	}
	return res, nil
}

// HasResource reports whether a resource with the given key exists.
func (d *Document) HasResource(key string) bool {
	_, ok := d.Resources[key]
	return ok
}

// ResourceKeys returns all resource keys in sorted order.
func (d *Document) ResourceKeys() []string {
	keys := make([]string, 0, len(d.Resources))
	for key := range d.Resources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ProviderCount returns the total number of providers across all resources.
func (d *Document) ProviderCount() int {
	count := 0
	for _, res := range d.Resources {
		count += len(res.Providers)
	}
	return count
}

// Copy returns a deep copy of the document. Loaded documents are treated
// as immutable; tools that need to modify one work on a copy.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Server = d.Server.copy()
	out.Metadata = d.Metadata.copy()
	if d.Resources != nil {
		out.Resources = make(map[string]Resource, len(d.Resources))
		for key, res := range d.Resources {
			out.Resources[key] = res.copy()
		}
	}
	return &out
}
