package paginate

// Page is one slice of a paginated collection. Pages are created by
// Paginator.PageAt and are immutable once constructed; they keep a
// back-reference to their paginator for navigation queries only.
type Page[T any] struct {
	items     []T
	number    int
	paginator *Paginator[T]
}

// Items returns the elements on this page.
func (pg *Page[T]) Items() []T { return pg.items }

// Len returns the number of elements on this page.
func (pg *Page[T]) Len() int { return len(pg.items) }

// Number returns the 0-based page number.
func (pg *Page[T]) Number() int { return pg.number }

// Paginator returns the paginator this page belongs to.
func (pg *Page[T]) Paginator() *Paginator[T] { return pg.paginator }

// HasNext reports whether a page follows this one.
func (pg *Page[T]) HasNext() bool {
	return pg.number < pg.paginator.PageCount()-1
}

// HasPrevious reports whether a page precedes this one.
func (pg *Page[T]) HasPrevious() bool {
	return pg.number > 0
}

// HasOtherPages reports whether the collection spans more than this page.
func (pg *Page[T]) HasOtherPages() bool {
	return pg.HasPrevious() || pg.HasNext()
}

// NextPageNumber returns number+1. Callers must check HasNext first; the
// result is not range-checked.
func (pg *Page[T]) NextPageNumber() int { return pg.number + 1 }

// PreviousPageNumber returns number-1. Callers must check HasPrevious first;
// the result is not range-checked.
func (pg *Page[T]) PreviousPageNumber() int { return pg.number - 1 }

// StartIndex returns the 0-based index of the first object on this page,
// relative to the total collection.
func (pg *Page[T]) StartIndex() int {
	if pg.paginator.TotalItems() == 0 {
		return 0
	}
	return pg.paginator.perPage * pg.number
}

// EndIndex returns the end index of this page relative to the total
// collection. The last page always ends at the total item count because it
// absorbs orphans. For other pages the historical formula number*perPage is
// kept for output compatibility, even though it equals StartIndex.
func (pg *Page[T]) EndIndex() int {
	if pg.number == pg.paginator.PageCount()-1 {
		return pg.paginator.TotalItems()
	}
	return pg.number * pg.paginator.perPage
}
