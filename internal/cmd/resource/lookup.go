// Package resource provides common resource operations for CLI commands.
package resource

import (
	"strings"

	"github.com/geoatlas/geoconf/pkg/document"
)

// Get retrieves a resource by key from the document.
// This handles the common pattern of resource lookup with proper error handling.
func Get(doc *document.Document, key string) (document.Resource, error) {
	return doc.Resource(key)
}

// Suggest returns the closest known resource key for a mistyped key,
// or "" when nothing is close enough to be useful.
func Suggest(doc *document.Document, key string) string {
	lower := strings.ToLower(key)

	// Prefix matches first, then substring matches
	for _, candidate := range doc.ResourceKeys() {
		if strings.HasPrefix(strings.ToLower(candidate), lower) {
			return candidate
		}
	}

	for _, candidate := range doc.ResourceKeys() {
		if strings.Contains(strings.ToLower(candidate), lower) {
			return candidate
		}
	}

	return ""
}
