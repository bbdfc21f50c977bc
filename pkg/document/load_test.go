package document

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/geoatlas/geoconf/pkg/errors"
)

// validYAML is the smallest document the rejection tests mutate from.
const validYAML = `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: ERROR
metadata:
  identification:
    title: Test server
    description: Server for loader tests
  license:
    name: CC-BY 4.0
  provider:
    name: Test Org
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
      id_field: id
`

// mapLookup builds an EnvLookup from a fixed map, keeping interpolation
// tests independent of the process environment.
func mapLookup(m map[string]string) EnvLookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", doc.Server.Bind.Host)
	assert.Equal(t, 5000, doc.Server.Bind.Port)
	assert.Equal(t, "0.0.0.0:5000", doc.Server.Bind.Address())
	assert.Equal(t, "http://localhost:5000", doc.Server.URL)
	assert.Equal(t, 500, doc.Server.PageLimit())
	assert.True(t, doc.Server.CorsEnabled())
	assert.False(t, doc.Server.PrettyPrintEnabled())
	assert.Equal(t, "/opt/schemas.opengis.net", doc.Server.OGCSchemasLocation)

	assert.Equal(t, LogLevelError, doc.Logging.Level)
	assert.Equal(t, "/tmp/geoapi.log", doc.Logging.Logfile)

	assert.Equal(t, "Test data server", doc.Metadata.Identification.Title)
	assert.Equal(t, "jane.doe@example.org", doc.Metadata.Contact.Email)

	require.Len(t, doc.Resources, 3)
	assert.Equal(t, []string{"dem", "lakes", "obs"}, doc.ResourceKeys())
	assert.Equal(t, 3, doc.ProviderCount())

	obs, err := doc.Resource("obs")
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeCollection, obs.Type)
	require.Len(t, obs.Providers, 1)
	assert.Equal(t, ProviderTypeFeature, obs.Providers[0].Type)
	assert.Equal(t, "CSV", obs.Providers[0].Name)
	assert.Equal(t, "id", obs.Providers[0].IDField)
	assert.Equal(t, "long", obs.Providers[0].Options["geometry_x"])

	// Temporal interval with both ends
	require.NotNil(t, obs.Extents.Temporal)
	assert.False(t, obs.Extents.Temporal.Open())

	// lakes declares end: null, an open-ended interval
	lakes, err := doc.Resource("lakes")
	require.NoError(t, err)
	require.NotNil(t, lakes.Extents.Temporal)
	assert.NotNil(t, lakes.Extents.Temporal.Begin)
	assert.Nil(t, lakes.Extents.Temporal.End)
	assert.True(t, lakes.Extents.Temporal.Open())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yml")
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Operation)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/app.yml": &fstest.MapFile{Data: []byte(validYAML)},
	}

	doc, err := LoadFS(fsys, "configs/app.yml")
	require.NoError(t, err)
	assert.True(t, doc.HasResource("obs"))
}

func TestParse_KeySetPreserved(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	// Every mapping key becomes a resource, nothing added or dropped.
	assert.Len(t, doc.Resources, 3)
	for _, key := range []string{"obs", "lakes", "dem"} {
		assert.True(t, doc.HasResource(key), "missing resource %q", key)
	}
	assert.False(t, doc.HasResource("phantom"))
}

func TestParse_CoverageResource(t *testing.T) {
	data := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: Coverage server
    description: Serves one elevation grid
  license:
    name: CC0
  provider:
    name: Test Org
resources:
  foo:
    type: collection
    title: Elevation
    description: Digital elevation model
    extents:
      spatial:
        bbox: [10.0, 45.0, 11.5, 46.5]
    providers:
    - type: coverage
      name: rasterio
      data: tests/data/dem.tif
      format:
        name: GTiff
        mimetype: application/x-geotiff
`)

	doc, err := Parse(data)
	require.NoError(t, err)

	foo, err := doc.Resource("foo")
	require.NoError(t, err)
	require.Len(t, foo.Providers, 1)

	p := foo.Providers[0]
	assert.Equal(t, ProviderTypeCoverage, p.Type)
	assert.Equal(t, "rasterio", p.Name)
	assert.Equal(t, "tests/data/dem.tif", p.Data)
	require.True(t, p.HasFormat())
	assert.Equal(t, "GTiff", p.Format.Name)
	assert.Equal(t, "application/x-geotiff", p.Format.Mimetype)
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	// Options the upstream sample ships commented out resolve to off, not
	// to an indeterminate state.
	require.NotNil(t, doc.Server.Cors)
	assert.False(t, doc.Server.CorsEnabled())
	assert.Empty(t, doc.Server.OGCSchemasLocation)

	assert.Equal(t, DefaultLimit, doc.Server.PageLimit())
	assert.Equal(t, DefaultMimetype, doc.Server.Mimetype)
	assert.Equal(t, DefaultEncoding, doc.Server.Encoding)
	assert.Equal(t, DefaultLanguage, doc.Server.Language)

	obs, err := doc.Resource("obs")
	require.NoError(t, err)
	assert.Equal(t, DefaultCRS, obs.Extents.Spatial.CRS)
}

func TestParse_WithoutDefaults(t *testing.T) {
	doc, err := Parse([]byte(validYAML), WithoutDefaults())
	require.NoError(t, err)

	assert.Nil(t, doc.Server.Cors)
	assert.Nil(t, doc.Server.Limit)
	assert.Empty(t, doc.Server.Mimetype)

	obs, err := doc.Resource("obs")
	require.NoError(t, err)
	assert.Empty(t, obs.Extents.Spatial.CRS)

	// PageLimit still answers with the documented default.
	assert.Equal(t, DefaultLimit, doc.Server.PageLimit())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		wantIn string
	}{
		{
			name: "temporal end precedes begin",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
      temporal:
        begin: 2007-10-30T08:57:29Z
        end: 2000-10-30T18:24:39Z
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
`,
			wantIn: "precedes begin",
		},
		{
			name: "empty providers list",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers: []
`,
			wantIn: "providers",
		},
		{
			name: "zero page limit",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
  limit: 0
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`,
			wantIn: "limit must be positive",
		},
		{
			name: "negative page limit",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
  limit: -25
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`,
			wantIn: "limit must be positive",
		},
		{
			name: "bbox minimum exceeds maximum",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [10, 20, 5, 30]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
`,
			wantIn: "minimum x must not exceed maximum x",
		},
		{
			name: "bbox with three values",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
`,
			wantIn: "bbox",
		},
		{
			name: "port above range",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 70000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`,
			wantIn: "65535",
		},
		{
			name: "unrecognized log level",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: TRACE
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`,
			wantIn: "logging.level",
		},
		{
			name: "unrecognized provider type",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: raster
      name: rasterio
      data: tests/data/dem.tif
`,
			wantIn: "type",
		},
		{
			name: "unknown top-level field",
			yaml: `server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
serving: true
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`,
			wantIn: "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestParse_DuplicateResourceKey(t *testing.T) {
	data := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: First
    description: First definition
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
  obs:
    type: collection
    title: Second
    description: Conflicting definition
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs2.csv
`)

	_, err := Parse(data)
	require.Error(t, err)

	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParse_CollectsAllViolations(t *testing.T) {
	// Three independent semantic violations: the load reports every one,
	// not just the first.
	data := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
  limit: -5
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [10, 20, 5, 30]
      temporal:
        begin: 2007-10-30T08:57:29Z
        end: 2000-10-30T18:24:39Z
    providers:
    - type: feature
      name: CSV
      data: tests/data/obs.csv
`)

	_, err := Parse(data)
	require.Error(t, err)

	var verrs pkgerrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "limit must be positive")
	assert.Contains(t, err.Error(), "minimum x must not exceed maximum x")
	assert.Contains(t, err.Error(), "precedes begin")
}

func TestParse_WithoutValidation(t *testing.T) {
	// A document with a semantic violation still parses when validation
	// is disabled.
	data := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 5000
  url: http://localhost:5000
  limit: -5
logging:
  level: INFO
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources: {}
`)

	doc, err := Parse(data, WithoutValidation())
	require.NoError(t, err)
	require.NotNil(t, doc.Server.Limit)
	assert.Equal(t, -5, *doc.Server.Limit)

	// The violation is still there for anyone who asks.
	require.Error(t, doc.Validate())
}

func TestParse_WithoutSchema(t *testing.T) {
	doc, err := Parse([]byte(validYAML), WithoutSchema())
	require.NoError(t, err)
	assert.True(t, doc.HasResource("obs"))
}

func TestParse_Interpolation(t *testing.T) {
	data := []byte(`server:
  bind:
    host: ${GEOAPI_HOST}
    port: 5000
  url: http://localhost:5000
logging:
  level: INFO
  logfile: ${GEOAPI_LOGDIR:-/tmp}/geoapi.log
metadata:
  identification:
    title: T
    description: D
  license:
    name: L
  provider:
    name: P
resources:
  obs:
    type: collection
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers:
    - type: feature
      name: CSV
      data: ${GEOAPI_DATA}/obs.csv
`)

	t.Run("all variables resolve", func(t *testing.T) {
		doc, err := Parse(data, WithEnvLookup(mapLookup(map[string]string{
			"GEOAPI_HOST": "10.0.0.7",
			"GEOAPI_DATA": "/srv/data",
		})))
		require.NoError(t, err)

		assert.Equal(t, "10.0.0.7", doc.Server.Bind.Host)
		assert.Equal(t, "/tmp/geoapi.log", doc.Logging.Logfile)

		obs, err := doc.Resource("obs")
		require.NoError(t, err)
		assert.Equal(t, "/srv/data/obs.csv", obs.Providers[0].Data)
	})

	t.Run("fallback honors set value", func(t *testing.T) {
		doc, err := Parse(data, WithEnvLookup(mapLookup(map[string]string{
			"GEOAPI_HOST":   "10.0.0.7",
			"GEOAPI_DATA":   "/srv/data",
			"GEOAPI_LOGDIR": "/var/log",
		})))
		require.NoError(t, err)
		assert.Equal(t, "/var/log/geoapi.log", doc.Logging.Logfile)
	})

	t.Run("missing variables reported together", func(t *testing.T) {
		_, err := Parse(data, WithEnvLookup(mapLookup(nil)))
		require.Error(t, err)

		var cfgErr *pkgerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "interpolation", cfgErr.Component)
		assert.Contains(t, err.Error(), "GEOAPI_HOST")
		assert.Contains(t, err.Error(), "GEOAPI_DATA")
	})

	t.Run("disabled interpolation keeps references verbatim", func(t *testing.T) {
		doc, err := Parse(data, WithoutInterpolation(), WithoutValidation())
		require.NoError(t, err)
		assert.Equal(t, "${GEOAPI_HOST}", doc.Server.Bind.Host)
	})
}
