package document

import (
	"github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"

	"github.com/geoatlas/geoconf/internal/embedded"
	"github.com/geoatlas/geoconf/pkg/errors"
)

// CheckSchema validates raw YAML document bytes against the embedded JSON
// Schema. Structural problems (wrong types, missing required keys, bad enum
// values) are collected into a ValidationErrors made of *SchemaError values,
// one per violation. A nil return means the document is structurally sound;
// semantic rules are enforced separately by Document.Validate.
func CheckSchema(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return errors.NewConfigError("schema", "convert document to JSON", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(embedded.ConfigSchema())
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewConfigError("schema", "validate document against schema", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, errors.NewSchemaError(re.Field(), re.Description()))
	}
	return errors.NewValidationErrors(errs...)
}
