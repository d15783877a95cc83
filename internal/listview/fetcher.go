package listview

import (
	"context"
	"net/url"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// Fetcher loads one page for a query.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q PageQuery) (PageResult[T], error)
}

type FetcherFunc[T any] func(ctx context.Context, q PageQuery) (PageResult[T], error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, q PageQuery) (PageResult[T], error) {
	return f(ctx, q)
}

// Getter is the slice of the HTTP client an Endpoint needs.
type Getter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// Endpoint binds a collection path and its query-parameter mapping to a
// Getter. A nil Params uses PageQuery.Params.
type Endpoint[T any] struct {
	Getter Getter
	Path   string
	Params func(PageQuery) url.Values
}

func NewEndpoint[T any](g Getter, path string) *Endpoint[T] {
	return &Endpoint[T]{Getter: g, Path: path}
}

// ForEntity is the endpoint of one of the editable collections.
func ForEntity[T any](g Getter, e types.Entity) *Endpoint[T] {
	return NewEndpoint[T](g, e.Path())
}

func (e *Endpoint[T]) Fetch(ctx context.Context, q PageQuery) (PageResult[T], error) {
	params := q.Params
	if e.Params != nil {
		params = func() url.Values { return e.Params(q) }
	}

	var resp types.PageResponse[T]
	if err := e.Getter.GetJSON(ctx, e.Path, params(), &resp); err != nil {
		return PageResult[T]{}, err
	}
	return FromResponse(resp, q), nil
}
