package document

import (
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/geoatlas/geoconf/pkg/errors"
)

// loadOptions is a struct that contains the options for loading a document.
type loadOptions struct {
	lookup        EnvLookup // environment used for ${NAME} interpolation
	interpolation bool
	schema        bool
	defaults      bool
	validation    bool
}

// apply applies the given options to the load options.
func (l *loadOptions) apply(opts ...Option) *loadOptions {
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// loadDefaults returns the default options for loading.
func loadDefaults() *loadOptions {
	return &loadOptions{
		lookup:        os.LookupEnv,
		interpolation: true,
		schema:        true,
		defaults:      true,
		validation:    true,
	}
}

// Option configures document loading.
type Option func(*loadOptions)

// WithEnvLookup overrides the environment used for ${NAME} interpolation.
// Tests pass a map-backed lookup to stay hermetic.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(l *loadOptions) {
		l.lookup = lookup
	}
}

// WithoutInterpolation disables ${NAME} environment interpolation, leaving
// references in the document verbatim.
func WithoutInterpolation() Option {
	return func(l *loadOptions) {
		l.interpolation = false
	}
}

// WithoutSchema skips the JSON Schema structural check.
func WithoutSchema() Option {
	return func(l *loadOptions) {
		l.schema = false
	}
}

// WithoutDefaults leaves optional fields unset instead of filling in the
// documented defaults.
func WithoutDefaults() Option {
	return func(l *loadOptions) {
		l.defaults = false
	}
}

// WithoutValidation skips semantic validation. The returned document may
// violate invariants; the caller takes responsibility for checking it.
func WithoutValidation() Option {
	return func(l *loadOptions) {
		l.validation = false
	}
}

// Load reads and validates the configuration document at path. It is the
// fail-fast entry point: any interpolation, parse, schema, or validation
// failure is returned and no document is produced.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path, opts...)
}

// LoadFS is like Load but reads from the provided filesystem, which lets
// callers load from embedded or test filesystems.
func LoadFS(fsys fs.FS, path string, opts ...Option) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path, opts...)
}

// Parse decodes and validates a configuration document from raw YAML bytes.
func Parse(data []byte, opts ...Option) (*Document, error) {
	return parse(data, "", opts...)
}

// parse runs the load pipeline: interpolation, strict decode, schema check,
// defaults, semantic validation. Strict decoding rejects unknown and
// duplicated keys, so typos surface as parse errors rather than silently
// ignored settings.
func parse(data []byte, source string, opts ...Option) (*Document, error) {
	options := loadDefaults().apply(opts...)

	if options.interpolation {
		interpolated, err := Interpolate(data, options.lookup)
		if err != nil {
			return nil, err
		}
		data = interpolated
	}

	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}

	if options.schema {
		if err := CheckSchema(data); err != nil {
			return nil, err
		}
	}

	if options.defaults {
		doc.ApplyDefaults()
	}

	if options.validation {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}
