// Package filter narrows document resources for list-style commands.
package filter

import (
	"strings"

	"github.com/geoatlas/geoconf/pkg/document"
)

// ResourceFilter applies filters to a document's resource map.
type ResourceFilter struct {
	Type    string // Provider type (feature, coverage, tile, map, edr, stac)
	Backend string // Provider backend name
	Search  string // General search term
	Limit   int    // Maximum number of results, 0 for all
}

// Apply returns the keys of matching resources in sorted order.
func (f *ResourceFilter) Apply(doc *document.Document) []string {
	keys := doc.ResourceKeys()
	if f == nil || f.isEmpty() {
		return keys
	}

	var filtered []string

	for _, key := range keys {
		resource := doc.Resources[key]
		if f.matches(key, &resource) {
			filtered = append(filtered, key)
		}
	}

	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}

	return filtered
}

func (f *ResourceFilter) isEmpty() bool {
	return f.Type == "" &&
		f.Backend == "" &&
		f.Search == "" &&
		f.Limit == 0
}

func (f *ResourceFilter) matches(key string, resource *document.Resource) bool {
	if f.Type != "" && !f.matchesType(resource) {
		return false
	}

	if f.Backend != "" && !f.matchesBackend(resource) {
		return false
	}

	if f.Search != "" && !f.matchesSearch(key, resource) {
		return false
	}

	return true
}

func (f *ResourceFilter) matchesType(resource *document.Resource) bool {
	for _, provider := range resource.Providers {
		if strings.EqualFold(string(provider.Type), f.Type) {
			return true
		}
	}
	return false
}

func (f *ResourceFilter) matchesBackend(resource *document.Resource) bool {
	for _, provider := range resource.Providers {
		if strings.EqualFold(provider.Name, f.Backend) {
			return true
		}
	}
	return false
}

func (f *ResourceFilter) matchesSearch(key string, resource *document.Resource) bool {
	search := strings.ToLower(f.Search)

	if strings.Contains(strings.ToLower(key), search) {
		return true
	}

	if strings.Contains(strings.ToLower(resource.Title), search) {
		return true
	}

	if strings.Contains(strings.ToLower(resource.Description), search) {
		return true
	}

	for _, keyword := range resource.Keywords {
		if strings.Contains(strings.ToLower(keyword), search) {
			return true
		}
	}

	return false
}
