// Package paginator is the pure page arithmetic shared by every listing:
// 1-based page numbers, fixed page size, out-of-range pages are empty
// rather than errors.
package paginator

const DefaultPageSize = 10

// Params is a normalized (page, pageSize) pair.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and substitutes the default page size for
// non-positive sizes.
func Normalize(page, pageSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Offset is the row offset of the first item on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages rounds the item count up to whole pages. Zero items is zero
// pages.
func (p Params) TotalPages(total int64) int {
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
