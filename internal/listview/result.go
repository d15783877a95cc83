package listview

import "github.com/Lumos-Labs-HQ/stockpanel/internal/types"

// PageInfo is the pagination metadata of one page, without the rows.
type PageInfo struct {
	PageIndex  int  `json:"pageIndex"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	IsFirst    bool `json:"isFirst"`
	IsLast     bool `json:"isLast"`
}

// NewPageInfo derives the first/last flags from the page position so they
// always agree with pageIndex and totalPages.
func NewPageInfo(pageIndex, pageSize, totalItems, totalPages int) PageInfo {
	if totalPages < 0 {
		totalPages = 0
	}
	return PageInfo{
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		IsFirst:    pageIndex == 0,
		IsLast:     totalPages == 0 || pageIndex == totalPages-1,
	}
}

// PageInfoFromResponse reads the paging fields of a backend envelope.
func PageInfoFromResponse[T any](resp types.PageResponse[T]) PageInfo {
	return NewPageInfo(resp.Number, resp.Size, resp.TotalElements, resp.TotalPages)
}

// HasNext reports whether a following page exists.
func (p PageInfo) HasNext() bool { return !p.IsLast }

func (p PageInfo) HasPrev() bool { return !p.IsFirst }

type PageResult[T any] struct {
	PageInfo
	Items []T `json:"items"`
}

// FromResponse converts a backend envelope into a PageResult. The index
// comes from the query that produced it, since some backends echo number=0
// on every page.
func FromResponse[T any](resp types.PageResponse[T], q PageQuery) PageResult[T] {
	size := resp.Size
	if size <= 0 {
		size = q.PageSize
	}
	items := resp.Content
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		PageInfo: NewPageInfo(q.PageIndex, size, resp.TotalElements, resp.TotalPages),
		Items:    items,
	}
}
