package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
)

func testDocument(url string) *document.Document {
	return &document.Document{
		Server: document.Server{
			URL:      url,
			Mimetype: "application/json",
		},
		Resources: map[string]document.Resource{
			"lakes": {Title: "Lakes"},
			"obs":   {Title: "Observations"},
		},
	}
}

func TestProbe_AllEndpoints(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.Header.Get("Accept")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	report, err := Probe(context.Background(), "", testDocument(srv.URL))
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, "/", report.Results[0].Path)
	assert.Equal(t, "/collections", report.Results[1].Path)
	assert.Equal(t, "/collections/lakes", report.Results[2].Path)
	assert.Equal(t, "/collections/obs", report.Results[3].Path)

	for _, result := range report.Results {
		assert.True(t, result.OK(), "endpoint %s", result.Path)
		assert.Equal(t, http.StatusOK, result.Status)
		assert.Equal(t, 1, result.Attempts)
	}

	assert.True(t, report.OK())
	assert.Zero(t, report.Failed())

	mu.Lock()
	defer mu.Unlock()
	for path, accept := range seen {
		assert.Equal(t, "application/json", accept, "Accept header for %s", path)
	}
}

func TestProbe_RetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	failures := 2

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.URL.Path == "/collections" && failures > 0 {
			failures--
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	prober := New(WithMaxTries(3), WithInitialInterval(time.Millisecond))
	report, err := prober.Probe(context.Background(), "", testDocument(srv.URL))
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 3, report.Results[1].Attempts)
}

func TestProbe_ClientErrorsNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/obs" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	report, err := Probe(context.Background(), "", testDocument(srv.URL))
	require.NoError(t, err)

	result := report.Results[3]
	assert.Equal(t, "/collections/obs", result.Path)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.Equal(t, 1, result.Attempts)
	assert.NoError(t, result.Err)
	assert.False(t, result.OK())

	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failed())
}

func TestProbe_BaseURLOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	doc := testDocument("http://config-url.invalid")

	report, err := Probe(context.Background(), srv.URL, doc)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, report.BaseURL)
	assert.True(t, report.OK())
}

func TestProbe_TrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	report, err := Probe(context.Background(), srv.URL+"/", testDocument(""))
	require.NoError(t, err)
	assert.Equal(t, srv.URL, report.BaseURL)
}

func TestProbe_InvalidBaseURL(t *testing.T) {
	_, err := Probe(context.Background(), "not a url", testDocument(""))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestProbe_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := srv.URL
	srv.Close()

	prober := New(WithMaxTries(2), WithInitialInterval(time.Millisecond))
	report, err := prober.Probe(context.Background(), url, testDocument(""))
	require.NoError(t, err)

	assert.False(t, report.OK())
	for _, result := range report.Results {
		assert.Error(t, result.Err, "endpoint %s", result.Path)
		assert.False(t, result.OK())
	}
}

func TestProbe_DefaultAcceptHeader(t *testing.T) {
	var mu sync.Mutex
	var accept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		accept = r.Header.Get("Accept")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	doc := testDocument(srv.URL)
	doc.Server.Mimetype = ""
	doc.Resources = nil

	_, err := Probe(context.Background(), "", doc)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, document.DefaultMimetype, accept)
}
