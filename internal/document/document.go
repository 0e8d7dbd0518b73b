// Package document models renderable documents: attribute bags parsed from
// source files, ordered document lists with positional sequences, and
// file-backed static documents with freshness tracking.
package document

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/websmith/internal/foundation"
	"git.home.luguber.info/inful/websmith/internal/paginate"
	"git.home.luguber.info/inful/websmith/internal/render"
)

// Document is an attribute bag plus a small set of well-known typed fields.
// Every field is exposed to templates when the document is rendered.
type Document struct {
	// SourcePath is the path of the backing source file, relative to the
	// source base. Empty for synthetic documents.
	SourcePath string

	// Seq is the document's position within its list, assigned by
	// List.PrepareSequences. None until the document joins a sorted list.
	Seq foundation.Option[paginate.Sequence[*Document]]

	fields map[string]any
}

// New creates an empty document.
func New() *Document {
	return &Document{fields: make(map[string]any)}
}

// Set stores a field value.
func (d *Document) Set(key string, value any) {
	d.fields[key] = value
}

// Get returns a field value and whether it is present.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Field returns a field value, or nil when absent. Single-return accessor for
// use inside templates, where two-return methods cannot be called.
func (d *Document) Field(key string) any {
	return d.fields[key]
}

// Has reports whether the field is present.
func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Delete removes a field.
func (d *Document) Delete(key string) {
	delete(d.fields, key)
}

// Fields returns a copy of the document's context fields: the attribute bag
// plus the well-known typed fields under their template names.
func (d *Document) Fields() map[string]any {
	ctx := make(map[string]any, len(d.fields)+2)
	for k, v := range d.fields {
		ctx[k] = v
	}
	if d.SourcePath != "" {
		ctx["source_path"] = d.SourcePath
	}
	if seq, ok := d.Seq.Get(); ok {
		ctx["sequence"] = seq
	}
	return ctx
}

// Format renders an inline template (typically a target path such as
// "posts/{{.slug}}.html") against the document's fields. Referencing a field
// the document does not have is an error.
func (d *Document) Format(tmpl string) (string, error) {
	return render.FormatPath(tmpl, d.Fields())
}

// RenderRequest describes one render of a document into a target file.
type RenderRequest struct {
	// Template is the template name, resolved by the engine.
	Template string
	// Target is the target path template, formatted against the document's
	// fields and joined to the target base.
	Target string
	// Extra supplies additional context values; they override instance fields.
	Extra map[string]any
	// Overrides take precedence over everything else.
	Overrides map[string]any
}

// Render formats the target path, builds the template context and writes the
// rendered output under targetBase.
//
// Context precedence, lowest first: computed defaults (rel_base, document),
// instance fields, Extra, Overrides.
func (d *Document) Render(eng *render.Engine, targetBase string, req RenderRequest) error {
	target, err := d.Format(req.Target)
	if err != nil {
		return fmt.Errorf("format target: %w", err)
	}
	targetPath := filepath.Join(targetBase, target)

	relBase, err := filepath.Rel(filepath.Dir(targetPath), targetBase)
	if err != nil {
		return fmt.Errorf("compute rel_base: %w", err)
	}

	ctx := map[string]any{
		"rel_base": filepath.ToSlash(relBase),
		"document": d,
	}
	for k, v := range d.Fields() {
		ctx[k] = v
	}
	for k, v := range req.Extra {
		ctx[k] = v
	}
	for k, v := range req.Overrides {
		ctx[k] = v
	}

	out, err := eng.Render(req.Template, ctx)
	if err != nil {
		return err
	}
	return render.WriteFile(targetPath, out)
}

// RenderI18N renders the document once per language, with the "lang" field set
// for the duration of each render. Any pre-existing lang field is restored
// afterwards.
func (d *Document) RenderI18N(eng *render.Engine, targetBase string, languages []string, req RenderRequest) error {
	oldLang, hadLang := d.Get("lang")
	defer func() {
		if hadLang {
			d.Set("lang", oldLang)
		} else {
			d.Delete("lang")
		}
	}()

	for _, lang := range languages {
		d.Set("lang", lang)
		if err := d.Render(eng, targetBase, req); err != nil {
			return fmt.Errorf("render lang %s: %w", lang, err)
		}
	}
	return nil
}
