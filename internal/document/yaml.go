package document

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAML loads a single YAML document whose root must be a mapping; every
// key becomes a document field.
func parseYAML(raw []byte, doc *Document) error {
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if data == nil {
		return fmt.Errorf("%w: YAML root must be a mapping", ErrMalformedSource)
	}
	for key, value := range data {
		doc.Set(key, value)
	}
	return nil
}

// parseJSON loads a JSON object; every key becomes a document field.
func parseJSON(raw []byte, doc *Document) error {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if data == nil {
		return fmt.Errorf("%w: JSON root must be an object", ErrMalformedSource)
	}
	for key, value := range data {
		doc.Set(key, value)
	}
	return nil
}
