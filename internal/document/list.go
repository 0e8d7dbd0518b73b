package document

import (
	"fmt"
	"regexp"
	"sort"

	"go.uber.org/multierr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/websmith/internal/fileset"
	"git.home.luguber.info/inful/websmith/internal/foundation"
	"git.home.luguber.info/inful/websmith/internal/paginate"
)

// List is an ordered collection of documents. It carries its own attribute bag
// (the embedded Document), so listing pages can render the list itself.
type List struct {
	*Document
	docs []*Document
}

// NewList creates an empty document list.
func NewList() *List {
	return &List{Document: New()}
}

// Append adds documents to the end of the list. Sequences are not updated;
// call Sort or PrepareSequences when the list is complete.
func (l *List) Append(docs ...*Document) {
	l.docs = append(l.docs, docs...)
}

// Items returns the list's documents in order.
func (l *List) Items() []*Document { return l.docs }

// Len returns the number of documents.
func (l *List) Len() int { return len(l.docs) }

// AddByPattern loads a document for every file in the listing that matches
// pattern. Named capture groups become document fields. The parser is looked
// up per file suffix in reg unless an explicit parser is given.
//
// Files that fail to load do not stop the remaining matches; their errors are
// aggregated into the returned error.
func (l *List) AddByPattern(lister *fileset.Lister, pattern *regexp.Regexp, reg *Registry, parser Parser) error {
	matches, err := lister.FindByPattern(pattern)
	if err != nil {
		return err
	}

	var errs error
	for _, m := range matches {
		doc, err := loadMatch(lister.Root(), m, reg, parser)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", m.Path, err))
			continue
		}
		l.docs = append(l.docs, doc)
	}
	return errs
}

func loadMatch(root string, m fileset.Match, reg *Registry, parser Parser) (*Document, error) {
	p := parser
	if p == nil {
		var err error
		p, err = reg.ParserFor(m.Path)
		if err != nil {
			return nil, err
		}
	}

	doc, err := LoadWith(p, root, m.Path)
	if err != nil {
		return nil, err
	}
	for key, value := range m.Groups {
		doc.Set(key, value)
	}
	return doc, nil
}

// KeyFunc derives a sort key from a document.
type KeyFunc func(*Document) string

// SourcePathKey is the default sort key. Source paths are unique within a
// source tree, so it yields a total order.
func SourcePathKey(d *Document) string { return d.SourcePath }

// FieldKey sorts by a named field; documents without the field sort first.
func FieldKey(field string) KeyFunc {
	return func(d *Document) string {
		v, ok := d.Get(field)
		if !ok {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}

// CollatedFieldKey sorts by a named field using locale-aware collation, so
// e.g. Scandinavian titles order correctly for their language.
func CollatedFieldKey(field string, tag language.Tag) KeyFunc {
	c := collate.New(tag)
	inner := FieldKey(field)
	var buf collate.Buffer
	return func(d *Document) string {
		return string(c.KeyFromString(&buf, inner(d)))
	}
}

// Sort stably sorts the list by key (SourcePathKey when nil) and recomputes
// every document's Sequence for the new order. Equal keys preserve their
// original relative order, also when reverse is set.
func (l *List) Sort(key KeyFunc, reverse bool) {
	if key == nil {
		key = SourcePathKey
	}
	sort.SliceStable(l.docs, func(i, j int) bool {
		if reverse {
			return key(l.docs[j]) < key(l.docs[i])
		}
		return key(l.docs[i]) < key(l.docs[j])
	})
	l.PrepareSequences()
}

// PrepareSequences assigns fresh positional metadata to every document,
// discarding any previously assigned Sequence.
func (l *List) PrepareSequences() {
	for i, doc := range l.docs {
		seq, err := paginate.MakeSequence(i, l.docs)
		if err != nil {
			// Unreachable: i is always a valid index here.
			panic(err)
		}
		doc.Seq = foundation.Some(seq)
	}
}
