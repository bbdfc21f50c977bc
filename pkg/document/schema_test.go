package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/geoatlas/geoconf/pkg/errors"
)

func TestCheckSchema_Valid(t *testing.T) {
	require.NoError(t, CheckSchema([]byte(validYAML)))
}

func TestCheckSchema_CollectsViolations(t *testing.T) {
	// Three structural problems in one document: missing server.url,
	// truncated bbox, unrecognized log level. All reported at once.
	data := []byte(`server:
  bind:
    host: 0.0.0.0
    port: 5000
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
`)

	err := CheckSchema(data)
	require.Error(t, err)

	var verrs pkgerrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 3)

	for _, member := range verrs {
		var schemaErr *pkgerrors.SchemaError
		assert.True(t, errors.As(member, &schemaErr))
	}

	assert.Contains(t, err.Error(), "url")
	assert.Contains(t, err.Error(), "bbox")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestCheckSchema_ResourceKeyPattern(t *testing.T) {
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
  "bad key!":
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
`)

	err := CheckSchema(data)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestCheckSchema_EmptyProviders(t *testing.T) {
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
    title: Observations
    description: Point observations
    extents:
      spatial:
        bbox: [-180, -90, 180, 90]
    providers: []
`)

	err := CheckSchema(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "providers")
}

func TestCheckSchema_MalformedYAML(t *testing.T) {
	err := CheckSchema([]byte("\tserver: {"))
	require.Error(t, err)

	var cfgErr *pkgerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "schema", cfgErr.Component)
}
