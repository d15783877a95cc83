package listview

// NewPageResult builds a page from a locally known total, the way an
// in-memory fetcher would.
func NewPageResult[T any](items []T, pageIndex, pageSize, totalItems int) PageResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		PageInfo: NewPageInfo(pageIndex, pageSize, totalItems, totalPages),
		Items:    items,
	}
}
