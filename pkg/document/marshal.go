package document

import (
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"
)

// Marshal renders the document as YAML in the conventional layout: two-space
// indentation, sequences flush left, section header comments, and block
// scalars for multiline text. The output is deterministic, so serializing
// the same document twice yields identical bytes.
func (d *Document) Marshal() ([]byte, error) {
	// Comment map for top-level section headers
	commentMap := yaml.CommentMap{
		"$.server":    {yaml.HeadComment(" HTTP server settings")},
		"$.logging":   {yaml.HeadComment(" Logging")},
		"$.metadata":  {yaml.HeadComment(" Service metadata")},
		"$.resources": {yaml.HeadComment(" Published resources")},
	}

	yamlData, err := yaml.MarshalWithOptions(d,
		yaml.Indent(2),                        // 2-space indentation
		yaml.IndentSequence(false),            // Keep sequences flush left
		yaml.UseLiteralStyleIfMultiline(true), // Use block scalar for multiline descriptions
		yaml.WithComment(commentMap),          // Apply section headers
	)
	if err != nil {
		return nil, err
	}

	return []byte(postProcessYAML(string(yamlData))), nil
}

// JSON renders the document as indented JSON with the same field layout as
// the YAML form. Handy for piping into JSON tooling.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// postProcessYAML adds blank lines between top-level sections and strips
// quotes from timestamp scalars so they render in plain RFC 3339 form.
func postProcessYAML(yamlContent string) string {
	lines := strings.Split(yamlContent, "\n")
	result := make([]string, 0, len(lines)+4)

	sectionHeaders := []string{
		"# Logging",
		"# Service metadata",
		"# Published resources",
	}

	for _, line := range lines {
		for _, header := range sectionHeaders {
			if line == header {
				result = append(result, "")
				break
			}
		}

		processed := line
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, `begin: "`) || strings.HasPrefix(trimmed, `end: "`) {
			processed = strings.ReplaceAll(line, `"`, "")
		}

		result = append(result, processed)
	}

	return strings.Join(result, "\n")
}
