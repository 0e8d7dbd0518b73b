// Package paginate partitions ordered collections into fixed-size pages and
// computes positional metadata (Sequence) for collection members.
//
// The page arithmetic follows the Django paginator model: a page size, an
// orphans threshold that merges a too-small trailing page into the previous
// one, and an optional empty first page for empty collections.
package paginate

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates a page or sequence index outside the valid
// range after negative-index normalization.
var ErrIndexOutOfRange = errors.New("index out of range")

// Paginator partitions an ordered collection into pages.
//
// The paginator holds a reference to the caller's slice; it never mutates it
// and the caller must not mutate it while pages are being read.
type Paginator[T any] struct {
	items               []T
	perPage             int
	orphans             int
	allowEmptyFirstPage bool
}

// New creates a Paginator over items with the given page size.
// Defaults: no orphan absorption, empty first page allowed.
func New[T any](items []T, perPage int) (*Paginator[T], error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("per-page must be positive, got %d", perPage)
	}
	return &Paginator[T]{
		items:               items,
		perPage:             perPage,
		allowEmptyFirstPage: true,
	}, nil
}

// WithOrphans sets the orphans threshold: if the trailing page would hold
// orphans or fewer leftover items, they are absorbed into the previous page.
// Negative values are treated as zero.
func (p *Paginator[T]) WithOrphans(orphans int) *Paginator[T] {
	if orphans < 0 {
		orphans = 0
	}
	p.orphans = orphans
	return p
}

// WithAllowEmptyFirstPage controls whether an empty collection yields a single
// empty page (true, the default) or no pages at all.
func (p *Paginator[T]) WithAllowEmptyFirstPage(allow bool) *Paginator[T] {
	p.allowEmptyFirstPage = allow
	return p
}

// PerPage returns the configured page size.
func (p *Paginator[T]) PerPage() int { return p.perPage }

// Orphans returns the configured orphans threshold.
func (p *Paginator[T]) Orphans() int { return p.orphans }

// TotalItems returns the number of items in the underlying collection.
func (p *Paginator[T]) TotalItems() int { return len(p.items) }

// PageCount returns the number of pages.
func (p *Paginator[T]) PageCount() int {
	if len(p.items) == 0 {
		if p.allowEmptyFirstPage {
			return 1
		}
		return 0
	}
	hits := len(p.items) - p.orphans
	if hits < 1 {
		hits = 1
	}
	return (hits + p.perPage - 1) / p.perPage
}

// PageAt returns the page at key. Negative keys count from the end, so
// PageAt(-1) is the last page. After normalization the key must lie in
// [0, PageCount()); otherwise ErrIndexOutOfRange is returned.
func (p *Paginator[T]) PageAt(key int) (*Page[T], error) {
	count := p.PageCount()
	if key < 0 {
		key += count
	}
	if key < 0 || key >= count {
		return nil, fmt.Errorf("%w: page %d of %d", ErrIndexOutOfRange, key, count)
	}
	bottom := key * p.perPage
	top := bottom + p.perPage
	if top+p.orphans >= len(p.items) {
		top = len(p.items)
	}
	return &Page[T]{
		items:     p.items[bottom:top],
		number:    key,
		paginator: p,
	}, nil
}

// Slice returns the pages for [start, stop) with Python slice semantics:
// negative bounds count from the end and out-of-range bounds are clamped.
func (p *Paginator[T]) Slice(start, stop int) ([]*Page[T], error) {
	count := p.PageCount()
	start = clampIndex(start, count)
	stop = clampIndex(stop, count)

	var pages []*Page[T]
	for key := start; key < stop; key++ {
		page, err := p.PageAt(key)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Pages returns every page in order.
func (p *Paginator[T]) Pages() ([]*Page[T], error) {
	return p.Slice(0, p.PageCount())
}

func clampIndex(key, length int) int {
	if key < 0 {
		key += length
	}
	if key < 0 {
		return 0
	}
	if key > length {
		return length
	}
	return key
}
