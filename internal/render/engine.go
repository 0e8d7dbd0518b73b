// Package render is the template engine boundary: it loads named templates
// from a template directory and renders them into byte slices or target files.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ErrTemplateNotFound indicates the named template file does not exist under
// the engine's template directory.
var ErrTemplateNotFound = errors.New("template not found")

// Engine loads and caches templates from a directory. Template names are
// paths relative to that directory.
type Engine struct {
	dir   string
	funcs template.FuncMap
	cache map[string]*template.Template
}

// NewEngine creates an Engine serving templates from dir.
func NewEngine(dir string) (*Engine, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return &Engine{
		dir:   dir,
		cache: make(map[string]*template.Template),
	}, nil
}

// WithFuncs registers additional template functions. Must be called before
// the first Render; templates parsed earlier keep the old function set.
func (e *Engine) WithFuncs(funcs template.FuncMap) *Engine {
	if e.funcs == nil {
		e.funcs = template.FuncMap{}
	}
	for name, fn := range funcs {
		e.funcs[name] = fn
	}
	return e
}

// Render executes the named template with data and returns the output bytes.
// Referencing a field absent from data is a render error, never a silent
// "<no value>" in the output.
func (e *Engine) Render(name string, data map[string]any) ([]byte, error) {
	tpl, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) lookup(name string) (*template.Template, error) {
	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("template name %q must be relative to the template directory", name)
	}

	raw, err := os.ReadFile(filepath.Join(e.dir, clean))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	tpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

// FormatPath renders an inline path template (e.g. "posts/{{.slug}}.html")
// against data. Missing keys are an error: a target path must never silently
// contain a zero value.
func FormatPath(pathTemplate string, data map[string]any) (string, error) {
	tpl, err := template.New("path").Option("missingkey=error").Parse(pathTemplate)
	if err != nil {
		return "", fmt.Errorf("parse path template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render path template: %w", err)
	}
	return buf.String(), nil
}
