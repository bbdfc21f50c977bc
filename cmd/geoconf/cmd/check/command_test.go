package check

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geoatlas/geoconf/cmd/application"
	"github.com/geoatlas/geoconf/internal/probe"
	"github.com/geoatlas/geoconf/pkg/document"
)

const docYAML = `server:
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

func mockApp(t *testing.T) *application.Mock {
	t.Helper()
	doc, err := document.Parse([]byte(docYAML))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return &application.Mock{
		DocumentFunc: func(string, ...document.Option) (*document.Document, error) {
			return doc, nil
		},
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewCommand(mockApp(t))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCheckCommand_AllOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := execute(t, "config.yml", "--url", server.URL); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
}

func TestCheckCommand_EndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/obs" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := execute(t, "config.yml", "--url", server.URL)
	if err == nil {
		t.Fatal("Execute() error = nil, want endpoint failure")
	}
	if !strings.Contains(err.Error(), "1 of 3 endpoints failed") {
		t.Errorf("Execute() error = %v, want failure count", err)
	}
}

func TestCheckCommand_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := execute(t, "config.yml", "--url", server.URL, "--tries", "1")
	if err == nil {
		t.Fatal("Execute() error = nil, want unreachable failure")
	}
	if !strings.Contains(err.Error(), "endpoints failed") {
		t.Errorf("Execute() error = %v, want failure count", err)
	}
}

func TestStatusText(t *testing.T) {
	ok := statusText(probe.EndpointResult{Status: 200})
	if ok != "200 OK" {
		t.Errorf("statusText(200) = %q, want %q", ok, "200 OK")
	}

	missing := statusText(probe.EndpointResult{Status: 404})
	if missing != "404 Not Found" {
		t.Errorf("statusText(404) = %q, want %q", missing, "404 Not Found")
	}

	down := statusText(probe.EndpointResult{Err: errors.New("connection refused")})
	if down != "unreachable" {
		t.Errorf("statusText(refused) = %q, want %q", down, "unreachable")
	}
}
