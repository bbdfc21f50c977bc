package docfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoatlas/geoconf/pkg/errors"
)

func TestResolve_ExplicitWins(t *testing.T) {
	t.Setenv(EnvVar, "/etc/geoapi/config.yml")

	path, err := Resolve("local.yml")
	require.NoError(t, err)
	assert.Equal(t, "local.yml", path)
}

func TestResolve_Environment(t *testing.T) {
	t.Setenv(EnvVar, "/etc/geoapi/config.yml")

	path, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "/etc/geoapi/config.yml", path)
}

func TestResolve_NothingSet(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Resolve("")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "document", cfgErr.Component)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.True(t, doc.HasResource("obs"))
}

func TestLoad_ResolveFailure(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load("")
	require.Error(t, err)
}

const validYAML = `server:
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
