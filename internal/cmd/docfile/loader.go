// Package docfile provides common document loading operations for CLI commands.
package docfile

import (
	"os"

	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
)

// EnvVar names the environment variable holding the default document path,
// mirroring how the server side locates its configuration.
const EnvVar = "GEOCONF_CONFIG"

// Resolve determines the document path for a command. An explicit path wins;
// otherwise the GEOCONF_CONFIG environment variable is consulted.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if path := os.Getenv(EnvVar); path != "" {
		return path, nil
	}

	return "", errors.NewConfigError("document",
		"no document path given and "+EnvVar+" is not set", nil)
}

// Load resolves the document path and loads it.
// This handles the common pattern of Resolve() -> document.Load().
func Load(path string, opts ...document.Option) (*document.Document, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	return document.Load(resolved, opts...)
}
