package document

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadYAMLList loads a document list from a single YAML file whose root
// mapping carries the items under listKey ("items" when empty). The remaining
// root keys become list-level fields; each item mapping becomes a document.
// Sequences are prepared immediately in file order.
func LoadYAMLList(sourceBase, path, listKey string) (*List, error) {
	if listKey == "" {
		listKey = "items"
	}

	raw, err := os.ReadFile(filepath.Join(sourceBase, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: YAML root must be a mapping", ErrMalformedSource)
	}

	rawItems, ok := data[listKey]
	if !ok {
		return nil, fmt.Errorf("%w: list attribute %q missing", ErrMalformedSource, listKey)
	}
	items, ok := rawItems.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: list attribute %q must be a sequence", ErrMalformedSource, listKey)
	}
	delete(data, listKey)

	l := NewList()
	l.SourcePath = path
	for key, value := range data {
		l.Set(key, value)
	}

	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d must be a mapping", ErrMalformedSource, i)
		}
		doc := New()
		for key, value := range fields {
			doc.Set(key, value)
		}
		l.Append(doc)
	}
	l.PrepareSequences()
	return l, nil
}
