package resources

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/pkg/document"
)

const documentYAML = `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: ERROR
metadata:
  identification:
    title: Demo service
    description: Demo geospatial service
  license:
    name: CC-BY 4.0
  provider:
    name: Example Org
resources:
  lakes:
    type: collection
    title: Large Lakes
    description: Lakes of the world
    keywords: [lakes, water]
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: GeoJSON
      data: tests/data/lakes.geojson
  obs:
    type: collection
    title: Observations
    description: Weather observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(documentYAML), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func mockApp() *application.Mock {
	return &application.Mock{
		DocumentFunc: func(path string, opts ...document.Option) (*document.Document, error) {
			return document.Load(path, opts...)
		},
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewCommand(mockApp())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestListCommand(t *testing.T) {
	path := writeDocument(t)

	if err := execute(t, "list", path); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
}

func TestListCommand_Filtered(t *testing.T) {
	path := writeDocument(t)

	if err := execute(t, "list", path, "--backend", "CSV"); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
}

func TestShowCommand(t *testing.T) {
	path := writeDocument(t)

	if err := execute(t, "show", path, "lakes"); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
}

func TestShowCommand_Suggestion(t *testing.T) {
	path := writeDocument(t)

	err := execute(t, "show", path, "lake")
	if err == nil {
		t.Fatal("Execute() error = nil, want not found")
	}
	if !strings.Contains(err.Error(), `did you mean "lakes"`) {
		t.Errorf("Execute() error = %v, want a suggestion for lakes", err)
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	path := writeDocument(t)

	err := execute(t, "show", path, "rivers")
	if err == nil {
		t.Fatal("Execute() error = nil, want not found")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Execute() error = %v, want no suggestion for an unrelated key", err)
	}
}
