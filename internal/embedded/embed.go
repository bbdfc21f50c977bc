// Package embedded carries the reference assets compiled into the
// binary: the JSON Schema the loader validates documents against, and a
// complete sample document used as a starting point for new deployments.
package embedded

import (
	"embed"
)

// FS embeds the document schema and the sample configuration at build time.
//
//go:embed schema/* sample/*
var FS embed.FS

// ConfigSchema returns the JSON Schema for configuration documents.
func ConfigSchema() []byte {
	data, err := FS.ReadFile("schema/config.schema.json")
	if err != nil {
		// The schema is compiled in; a read failure is a build defect.
		panic("embedded: config schema missing: " + err.Error())
	}
	return data
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() []byte {
	data, err := FS.ReadFile("sample/config.sample.yml")
	if err != nil {
		panic("embedded: sample config missing: " + err.Error())
	}
	return data
}
