package integration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/geoatlas/geoconf"
	"github.com/geoatlas/geoconf/pkg/document"
)

const demoDocument = `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: Integration demo
    description: Exercises the public loading surface
  license:
    name: CC-BY 4.0
  provider:
    name: Example Org
resources:
  lakes:
    type: collection
    title: Large Lakes
    description: Lakes of the world
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
      - type: feature
        name: GeoJSON
        data: tests/data/lakes.geojson
`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	doc, err := geoconf.Load(writeDocument(t, demoDocument))
	if err != nil {
		t.Fatalf("Failed to load document: %v", err)
	}
	if doc == nil {
		t.Fatal("Expected document, got nil")
	}

	if doc.Server.Bind.Address() != "0.0.0.0:5000" {
		t.Errorf("Bind address = %s, want 0.0.0.0:5000", doc.Server.Bind.Address())
	}
	if !doc.HasResource("lakes") {
		t.Error("Expected document to have the lakes resource")
	}

	// Defaults should be filled in for settings the document omits
	if doc.Server.PageLimit() != document.DefaultLimit {
		t.Errorf("PageLimit = %d, want default %d", doc.Server.PageLimit(), document.DefaultLimit)
	}
	res, err := doc.Resource("lakes")
	if err != nil {
		t.Fatalf("Failed to look up lakes: %v", err)
	}
	if res.Extents.Spatial.CRS != document.DefaultCRS {
		t.Errorf("CRS = %s, want default %s", res.Extents.Spatial.CRS, document.DefaultCRS)
	}
}

func TestLoadDocumentFS(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/demo.yml": &fstest.MapFile{Data: []byte(demoDocument)},
	}

	doc, err := geoconf.LoadFS(fsys, "configs/demo.yml")
	if err != nil {
		t.Fatalf("Failed to load document from fs.FS: %v", err)
	}
	if len(doc.Resources) != 1 {
		t.Errorf("Resources = %d, want 1", len(doc.Resources))
	}
}

func TestLoadWithInterpolation(t *testing.T) {
	t.Setenv("GEOCONF_DEMO_HOST", "10.0.0.7")

	interpolated := `server:
  bind:
    host: ${GEOCONF_DEMO_HOST}
    port: ${GEOCONF_DEMO_PORT:-5000}
  url: http://localhost:5000
logging:
  level: ${GEOCONF_DEMO_LEVEL:-INFO}
metadata:
  identification:
    title: Integration demo
    description: Exercises interpolation
  license:
    name: CC-BY 4.0
  provider:
    name: Example Org
resources:
  lakes:
    type: collection
    title: Large Lakes
    description: Lakes of the world
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
      - type: feature
        name: GeoJSON
        data: tests/data/lakes.geojson
`

	doc, err := geoconf.Load(writeDocument(t, interpolated))
	if err != nil {
		t.Fatalf("Failed to load interpolated document: %v", err)
	}

	if doc.Server.Bind.Host != "10.0.0.7" {
		t.Errorf("Host = %s, want 10.0.0.7 from environment", doc.Server.Bind.Host)
	}
	if doc.Server.Bind.Port != 5000 {
		t.Errorf("Port = %d, want fallback 5000", doc.Server.Bind.Port)
	}
}

func TestLoadOptions(t *testing.T) {
	// Without validation a document that breaks semantic rules still loads
	t.Run("WithoutValidation", func(t *testing.T) {
		broken := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 123456
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: Broken
    description: Port out of range
  license:
    name: CC-BY 4.0
  provider:
    name: Example Org
resources: {}
`)
		if _, err := geoconf.Parse(broken); err == nil {
			t.Error("Expected validation failure for out-of-range port")
		}

		doc, err := geoconf.Parse(broken, document.WithoutValidation(), document.WithoutSchema())
		if err != nil {
			t.Fatalf("Failed to parse with validation disabled: %v", err)
		}
		if doc.Server.Bind.Port != 123456 {
			t.Errorf("Port = %d, want the raw 123456", doc.Server.Bind.Port)
		}
	})

	// Without interpolation variable references stay verbatim
	t.Run("WithoutInterpolation", func(t *testing.T) {
		literal := `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: Integration demo
    description: Exercises interpolation bypass
  license:
    name: CC-BY 4.0
  provider:
    name: Example Org
resources:
  lakes:
    type: collection
    title: Large Lakes
    description: Lakes of the world
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
      - type: feature
        name: GeoJSON
        data: ${GEOCONF_DEMO_UNSET_DATA}
`
		doc, err := geoconf.Parse([]byte(literal), document.WithoutInterpolation())
		if err != nil {
			t.Fatalf("Failed to parse with interpolation disabled: %v", err)
		}

		res, err := doc.Resource("lakes")
		if err != nil {
			t.Fatalf("Failed to look up lakes: %v", err)
		}
		if res.Providers[0].Data != "${GEOCONF_DEMO_UNSET_DATA}" {
			t.Errorf("Data = %s, want the literal reference", res.Providers[0].Data)
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	doc, err := geoconf.Load(writeDocument(t, demoDocument))
	if err != nil {
		t.Fatalf("Failed to load document: %v", err)
	}

	rendered, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}

	reloaded, err := geoconf.Parse(rendered)
	if err != nil {
		t.Fatalf("Failed to reload rendered document: %v", err)
	}

	if len(reloaded.Resources) != len(doc.Resources) {
		t.Errorf("Reloaded resources = %d, want %d", len(reloaded.Resources), len(doc.Resources))
	}
	if reloaded.Server.URL != doc.Server.URL {
		t.Errorf("Reloaded URL = %s, want %s", reloaded.Server.URL, doc.Server.URL)
	}
}
