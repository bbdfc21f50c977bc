package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/agentstation/utc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utcComparer compares utc.Time values by instant. The promoted Equal
// method takes a time.Time, so go-cmp needs an explicit comparer.
var utcComparer = cmp.Comparer(func(x, y utc.Time) bool {
	return x.Time.Equal(y.Time)
})

func TestDocument_Marshal_SectionHeaders(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)
	yaml := string(data)

	headers := []string{
		"# HTTP server settings",
		"# Logging",
		"# Service metadata",
		"# Published resources",
	}

	lines := strings.Split(yaml, "\n")
	for _, header := range headers {
		headerIndex := -1
		for i, line := range lines {
			if strings.TrimSpace(line) == header {
				headerIndex = i
				break
			}
		}

		if headerIndex == -1 {
			t.Errorf("section header not found: %s", header)
			continue
		}

		// Every header except the first sits after a blank line.
		if headerIndex > 0 {
			previous := lines[headerIndex-1]
			if strings.TrimSpace(previous) != "" {
				t.Errorf("section header %q should have a blank line before it, got %q", header, previous)
			}
		}
	}
}

func TestDocument_Marshal_Content(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)
	yaml := string(data)

	expected := []string{
		"server:",
		"host: 0.0.0.0",
		"port: 5000",
		"level: ERROR",
		"obs:",
		"lakes:",
		"dem:",
		"- type: coverage",
		"name: GTiff",
		"mimetype: application/x-geotiff",
		// Timestamps render unquoted
		"begin: 2000-10-30T18:24:39Z",
		"end: 2007-10-30T08:57:29Z",
		// Open-ended interval keeps its explicit null
		"end: null",
	}

	for _, want := range expected {
		if !strings.Contains(yaml, want) {
			t.Errorf("marshaled document should contain %q", want)
		}
	}
}

func TestDocument_Marshal_RoundTripIdempotent(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	first, err := doc.Marshal()
	require.NoError(t, err)

	reparsed, err := Parse(first)
	require.NoError(t, err)

	second, err := reparsed.Marshal()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestDocument_RoundTrip_PreservesRecord(t *testing.T) {
	doc, err := Load("testdata/complete.yml")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	reparsed, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(doc, reparsed, utcComparer); diff != "" {
		t.Errorf("document changed across round trip (-first +second):\n%s", diff)
	}
}

func TestDocument_RoundTrip_MinimalDocument(t *testing.T) {
	doc, err := Load("testdata/minimal.yml")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	reparsed, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(doc, reparsed, utcComparer); diff != "" {
		t.Errorf("document changed across round trip (-first +second):\n%s", diff)
	}
}

func TestDocument_JSON(t *testing.T) {
	doc, err := Load("testdata/minimal.yml")
	require.NoError(t, err)

	data, err := doc.JSON()
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "server")
	assert.Contains(t, decoded, "logging")
	assert.Contains(t, decoded, "metadata")
	assert.Contains(t, decoded, "resources")
}
