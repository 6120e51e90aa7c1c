// Package pagination slices ordered result sets into fixed-size pages.
//
// Page numbers are 1-based. An absent or unparseable page parameter means
// page 1; a number past the end clamps to the last page rather than
// returning an empty slice. An empty source still yields one (empty) page
// so callers always have valid pager metadata to render.
package pagination

import "strconv"

// Page describes one page's position within the full result set.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// New computes the page for a requested 1-based number over totalItems.
// Out-of-range requests clamp: below 1 to the first page, past the end to
// the last.
func New(totalItems, size, requested int) Page {
	if size < 1 {
		size = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}

// Offset returns the index of the page's first item in the full set.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of items on this page.
func (p Page) Limit() int {
	return p.Size
}

// Slice pages an in-memory sequence and returns the requested page's items
// with the computed page. The returned slice aliases items.
func Slice[T any](items []T, size, requested int) ([]T, Page) {
	page := New(len(items), size, requested)

	start := page.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], page
}

// ParseRequested parses a page query parameter. Anything that is not a
// positive integer means the first page.
func ParseRequested(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
