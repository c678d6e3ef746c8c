// internal/repository/query.go
package repository

// DefaultPageSize matches the original deployment's page size.
const DefaultPageSize = 20

// ListQuery selects a page of customers, optionally narrowed by a search
// term. A non-empty term matches records where any of name, id, phone or
// model contains it case-insensitively; backends are responsible for
// escaping it for their own pattern language. Results sort by name
// ascending with id as the tie-breaker so repeated requests paginate
// deterministically.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// NewListQuery clamps the 1-based page number and falls back to
// DefaultPageSize when the size is not positive.
func NewListQuery(search string, page, pageSize int) ListQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return ListQuery{Search: search, Page: page, PageSize: pageSize}
}

// Offset returns how many records precede the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Limit returns the page size.
func (q ListQuery) Limit() int {
	return q.PageSize
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
