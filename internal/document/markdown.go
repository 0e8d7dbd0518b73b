package document

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// parseMarkdown splits YAML frontmatter from the Markdown body, stores the
// frontmatter values as document fields and the rendered HTML body under
// "content". Frontmatter values that are single-element lists collapse to the
// element itself.
func parseMarkdown(raw []byte, doc *Document) error {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return err
	}

	if len(fm) > 0 {
		var meta map[string]any
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return fmt.Errorf("%w: frontmatter: %v", ErrMalformedSource, err)
		}
		for key, value := range meta {
			doc.Set(key, collapseSingleton(value))
		}
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(body, &buf); err != nil {
		return fmt.Errorf("%w: markdown body: %v", ErrMalformedSource, err)
	}
	doc.Set("content", buf.String())
	return nil
}

// collapseSingleton unwraps single-element lists, mirroring the usual
// frontmatter convention that `tags: [go]` means the scalar "go".
func collapseSingleton(value any) any {
	if list, ok := value.([]any); ok && len(list) == 1 {
		return list[0]
	}
	return value
}

// splitFrontmatter separates a `---` delimited YAML frontmatter block from the
// body. Documents without a leading delimiter are all body. A frontmatter
// block without a closing delimiter is malformed.
func splitFrontmatter(content []byte) (frontmatter, body []byte, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: frontmatter closing delimiter missing", ErrMalformedSource)
	}

	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
