package domain

// PagedResult holds one page of results together with the total count of
// the filtered set, from which page arithmetic is derived.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p PagedResult[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// HasNextPage returns true if a page after the current one exists.
func (p PagedResult[T]) HasNextPage() bool {
	return p.Page < p.TotalPages()
}

// HasPreviousPage returns true if a page before the current one exists.
func (p PagedResult[T]) HasPreviousPage() bool {
	return p.Page > 1
}
