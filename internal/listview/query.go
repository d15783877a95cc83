package listview

import (
	"net/url"
	"strconv"
	"strings"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection maps free text to a direction, defaulting to Asc.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// PageQuery is the client-held description of the page to fetch next.
type PageQuery struct {
	PageIndex     int           `json:"pageIndex"`
	PageSize      int           `json:"pageSize"`
	SortKey       string        `json:"sortKey,omitempty"`
	SortDirection SortDirection `json:"sortDirection"`
	FilterText    string        `json:"filterText"`
}

func NewPageQuery(pageSize int) PageQuery {
	if pageSize <= 0 {
		pageSize = 10
	}
	return PageQuery{PageSize: pageSize, SortDirection: Asc}
}

func (q PageQuery) WithPage(n int) PageQuery {
	if n < 0 {
		n = 0
	}
	q.PageIndex = n
	return q
}

// WithFilter changes the filter text and rewinds to the first page.
func (q PageQuery) WithFilter(text string) PageQuery {
	q.FilterText = text
	q.PageIndex = 0
	return q
}

// WithPageSize changes the page size and rewinds to the first page.
// Non-positive sizes leave the query untouched.
func (q PageQuery) WithPageSize(n int) PageQuery {
	if n <= 0 {
		return q
	}
	q.PageSize = n
	q.PageIndex = 0
	return q
}

func (q PageQuery) WithSort(key string, dir SortDirection) PageQuery {
	q.SortKey = strings.TrimSpace(key)
	if dir != Desc {
		dir = Asc
	}
	q.SortDirection = dir
	return q
}

// Sort renders the backend's "key,dir" sort parameter, or "" when unsorted.
func (q PageQuery) Sort() string {
	if q.SortKey == "" {
		return ""
	}
	return q.SortKey + "," + string(q.SortDirection)
}

// Params is the default query-parameter mapping: page, size, name, sort.
func (q PageQuery) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.PageIndex))
	v.Set("size", strconv.Itoa(q.PageSize))
	if q.FilterText != "" {
		v.Set("name", q.FilterText)
	}
	if s := q.Sort(); s != "" {
		v.Set("sort", s)
	}
	return v
}
