package domain

import "fmt"

// DefaultPageSize matches the eight rows per page the record tables show.
const DefaultPageSize = 8

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 100

// PaginationParams carries page/pageSize values from the HTTP layer to the
// pagination view. Page is 1-indexed and may still be out of range here;
// Paginate clamps it against the collection.
type PaginationParams struct {
	// Page is the requested page number.
	Page int
	// Limit is the number of items per page.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1 and limit=DefaultPageSize.
// The limit is capped at MaxPageSize.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageSize}
	if page != nil {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageSize)
	}
	return p
}

// Page is one slice of an already-sorted collection.
type Page[T any] struct {
	Items      []T
	Page       int // clamped into [1, TotalPages]
	PageSize   int
	TotalPages int
	TotalItems int
}

// Paginate slices items for the requested page.
//
// TotalPages is max(1, ceil(len(items)/limit)). Out-of-range page numbers snap
// to the nearest valid page instead of failing, so page 0 yields page 1 and
// anything past the end yields the last page.
func Paginate[T any](items []T, p PaginationParams) Page[T] {
	size := p.Limit
	if size < 1 {
		size = DefaultPageSize
	}
	n := len(items)
	totalPages := max(1, (n+size-1)/size)
	page := min(max(1, p.Page), totalPages)

	start := min((page-1)*size, n)
	end := min(start+size, n)

	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:      out,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: n,
	}
}

// DisplayPage is the page number shown to a user. An empty collection shows
// page 0 even though Page is clamped to 1 internally.
func (p Page[T]) DisplayPage() int {
	if p.TotalItems == 0 {
		return 0
	}
	return p.Page
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Label renders the page indicator, e.g. "Page 2 of 5" or "Page 0 of 1".
func (p Page[T]) Label() string {
	return fmt.Sprintf("Page %d of %d", p.DisplayPage(), p.TotalPages)
}
