package geoconf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
)

const watchTimeout = 5 * time.Second

func writeDocument(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func startWatcher(t *testing.T, path string, opts ...WatchOption) *Watcher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts = append([]WatchOption{WithDebounce(25 * time.Millisecond)}, opts...)
	watcher, err := Watch(ctx, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Stop() })
	return watcher
}

func TestWatch_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	watcher := startWatcher(t, path)

	doc := watcher.Document()
	require.NotNil(t, doc)
	assert.Equal(t, "http://localhost:5000", doc.Server.URL)
	assert.True(t, doc.HasResource("obs"))
	assert.Equal(t, path, watcher.Path())
}

func TestWatch_InitialLoadFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, "server: [broken")

	_, err := Watch(context.Background(), path)
	require.Error(t, err)
}

func TestWatch_MissingFile(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestWatch_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	updates := make(chan *document.Document, 1)
	watcher := startWatcher(t, path, WithUpdateHook(func(_, newDoc *document.Document) {
		updates <- newDoc
	}))

	writeDocument(t, path, strings.Replace(watchYAML, "Observations", "Renamed observations", 1))

	select {
	case newDoc := <-updates:
		resource, err := newDoc.Resource("obs")
		require.NoError(t, err)
		assert.Equal(t, "Renamed observations", resource.Title)
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for reload")
	}

	resource, err := watcher.Document().Resource("obs")
	require.NoError(t, err)
	assert.Equal(t, "Renamed observations", resource.Title)
}

func TestWatch_KeepsLastGoodOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	failures := make(chan error, 1)
	watcher := startWatcher(t, path, WithErrorHook(func(err error) {
		failures <- err
	}))

	writeDocument(t, path, "server: [broken")

	select {
	case err := <-failures:
		require.Error(t, err)
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for reload failure")
	}

	doc := watcher.Document()
	require.NotNil(t, doc)
	assert.True(t, doc.HasResource("obs"))
}

func TestWatch_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	updates := make(chan *document.Document, 1)
	startWatcher(t, path, WithUpdateHook(func(_, newDoc *document.Document) {
		updates <- newDoc
	}))

	// Editors commonly save by writing a temp file and renaming it over
	// the target, which replaces the watched inode.
	tmp := filepath.Join(dir, "config.yml.tmp")
	writeDocument(t, tmp, strings.Replace(watchYAML, "Observations", "Replaced", 1))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case newDoc := <-updates:
		resource, err := newDoc.Resource("obs")
		require.NoError(t, err)
		assert.Equal(t, "Replaced", resource.Title)
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for reload after rename")
	}
}

func TestWatch_LateHookRegistration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	watcher := startWatcher(t, path)

	updates := make(chan *document.Document, 1)
	watcher.OnUpdate(func(_, newDoc *document.Document) {
		updates <- newDoc
	})

	writeDocument(t, path, strings.Replace(watchYAML, "Observations", "Late", 1))

	select {
	case <-updates:
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatch_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	watcher, err := Watch(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, watcher.Stop())
	require.NoError(t, watcher.Stop())
}

func TestWatch_InvalidDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	writeDocument(t, path, watchYAML)

	_, err := Watch(context.Background(), path, WithDebounce(0))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

const watchYAML = `server:
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
