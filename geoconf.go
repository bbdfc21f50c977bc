// Package geoconf loads, validates, and watches YAML configuration documents
// for OGC API style geospatial servers.
//
// A configuration document describes everything a running deployment needs:
// the HTTP server settings, logging, service metadata, and a map of published
// resources, each with links, keywords, spatial and temporal extents, and the
// data provider that backs it. Loading is strict and fail-fast: unknown keys,
// schema violations, and semantic rule violations are all reported together
// so a document is either fully usable or rejected with every problem listed.
//
// Example usage:
//
//	// Load and validate a document
//	doc, err := geoconf.Load("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Server.URL)
//
//	// Look up a resource by key
//	resource, err := doc.Resource("lakes")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resource.Title)
//
//	// Watch a document for changes on disk
//	watcher, err := geoconf.Watch(ctx, "config.yml",
//	    geoconf.WithUpdateHook(func(old, new *geoconf.Document) {
//	        log.Printf("document reloaded: %d resources", len(new.Resources))
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer watcher.Stop()
//
// The heavy lifting lives in pkg/document; this package re-exports the
// common entry points so most callers only import geoconf.
package geoconf

import (
	"io/fs"

	"github.com/geoatlas/geoconf/pkg/document"
)

// Aliases for the document types most callers need, so importing
// pkg/document directly stays optional.
type (
	// Document is a parsed and validated configuration document.
	Document = document.Document

	// Server holds the HTTP server settings of a document.
	Server = document.Server

	// Logging holds the logging settings of a document.
	Logging = document.Logging

	// Metadata holds the service metadata of a document.
	Metadata = document.Metadata

	// Resource is a single published dataset entry.
	Resource = document.Resource

	// Provider is the data backend of a resource.
	Provider = document.Provider

	// Extents holds the spatial and temporal extents of a resource.
	Extents = document.Extents

	// Link is a web link attached to a resource.
	Link = document.Link

	// Finding is a single lint observation about a document.
	Finding = document.Finding

	// Option adjusts how a document is loaded.
	Option = document.Option
)

// Load reads, interpolates, parses, and validates the document at path.
func Load(path string, opts ...Option) (*Document, error) {
	return document.Load(path, opts...)
}

// LoadFS is Load reading from an fs.FS instead of the OS filesystem.
func LoadFS(fsys fs.FS, path string, opts ...Option) (*Document, error) {
	return document.LoadFS(fsys, path, opts...)
}

// Parse parses and validates raw YAML document content.
func Parse(data []byte, opts ...Option) (*Document, error) {
	return document.Parse(data, opts...)
}
