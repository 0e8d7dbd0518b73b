package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnknownDocumentType indicates a source path whose suffix has no
	// registered parser and no explicit parser was supplied.
	ErrUnknownDocumentType = errors.New("no document type for path")

	// ErrParserUnavailable indicates a suffix that is known but whose parser
	// is not available in this build.
	ErrParserUnavailable = errors.New("document parser unavailable")

	// ErrMalformedSource indicates a source file the parser could not accept,
	// such as a YAML document whose root is not a mapping.
	ErrMalformedSource = errors.New("malformed source document")
)

// Parser turns raw file content into document fields.
type Parser interface {
	Parse(raw []byte, doc *Document) error
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(raw []byte, doc *Document) error

func (f ParserFunc) Parse(raw []byte, doc *Document) error { return f(raw, doc) }

// Registry maps file suffixes to parsers.
type Registry struct {
	bySuffix map[string]Parser
}

// NewRegistry creates a registry with the built-in document types:
// Markdown with YAML frontmatter (.md), YAML mappings (.yaml, .yml) and
// JSON objects (.json).
func NewRegistry() *Registry {
	r := &Registry{bySuffix: make(map[string]Parser)}
	r.Register(".md", ParserFunc(parseMarkdown))
	r.Register(".yaml", ParserFunc(parseYAML))
	r.Register(".yml", ParserFunc(parseYAML))
	r.Register(".json", ParserFunc(parseJSON))
	return r
}

// Register binds a suffix (including the leading dot) to a parser. Registering
// a nil parser marks the suffix as known-but-unavailable: looking it up yields
// ErrParserUnavailable instead of ErrUnknownDocumentType.
func (r *Registry) Register(suffix string, p Parser) {
	r.bySuffix[strings.ToLower(suffix)] = p
}

// ParserFor returns the parser registered for the path's suffix.
func (r *Registry) ParserFor(path string) (Parser, error) {
	suffix := strings.ToLower(filepath.Ext(path))
	p, ok := r.bySuffix[suffix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, path)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: suffix %q", ErrParserUnavailable, suffix)
	}
	return p, nil
}

// Load reads the file at path (relative to sourceBase) and parses it with the
// parser registered for its suffix.
func (r *Registry) Load(sourceBase, path string) (*Document, error) {
	p, err := r.ParserFor(path)
	if err != nil {
		return nil, err
	}
	return LoadWith(p, sourceBase, path)
}

// LoadWith reads the file at path (relative to sourceBase) and parses it with
// an explicit parser.
func LoadWith(p Parser, sourceBase, path string) (*Document, error) {
	raw, err := os.ReadFile(filepath.Join(sourceBase, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc := New()
	doc.SourcePath = path
	if err := p.Parse(raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
