package listview

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

func TestPageQueryTransitions(t *testing.T) {
	q := NewPageQuery(20).WithPage(3)
	assert.Equal(t, 3, q.PageIndex)

	assert.Equal(t, 0, q.WithFilter("caixa").PageIndex)
	assert.Equal(t, 0, q.WithPageSize(50).PageIndex)
	assert.Equal(t, 3, q.WithPageSize(0).PageIndex)
	assert.Equal(t, 3, q.WithSort("name", Desc).PageIndex)
	assert.Equal(t, 0, q.WithPage(-2).PageIndex)
}

func TestPageQueryParams(t *testing.T) {
	q := NewPageQuery(10).WithFilter("cabo").WithSort(" name ", SortDirection("sideways")).WithPage(2)
	p := q.Params()

	assert.Equal(t, "2", p.Get("page"))
	assert.Equal(t, "10", p.Get("size"))
	assert.Equal(t, "cabo", p.Get("name"))
	assert.Equal(t, "name,asc", p.Get("sort"))

	bare := NewPageQuery(5).Params()
	assert.False(t, bare.Has("name"))
	assert.False(t, bare.Has("sort"))
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseSortDirection("DESC"))
	assert.Equal(t, Asc, ParseSortDirection("asc"))
	assert.Equal(t, Asc, ParseSortDirection(""))
}

func TestPageInfoInvariants(t *testing.T) {
	r := NewPageResult([]int{1, 2}, 0, 20, 24)
	assert.Equal(t, 2, r.TotalPages)
	assert.True(t, r.IsFirst)
	assert.False(t, r.IsLast)
	assert.True(t, r.HasNext())
	assert.False(t, r.HasPrev())

	empty := NewPageResult[int](nil, 0, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.IsFirst)
	assert.True(t, empty.IsLast)
	assert.NotNil(t, empty.Items)
}

func TestFromResponseUsesQueryIndex(t *testing.T) {
	resp := types.PageResponse[string]{
		Content:       []string{"a"},
		TotalElements: 21,
		TotalPages:    2,
		Number:        0,
		Size:          20,
		First:         true,
		Last:          false,
	}
	r := FromResponse(resp, NewPageQuery(20).WithPage(1))
	assert.Equal(t, 1, r.PageIndex)
	assert.False(t, r.IsFirst)
	assert.True(t, r.IsLast)
}

type fakeGetter struct {
	path  string
	query url.Values
	body  string
}

func (g *fakeGetter) GetJSON(_ context.Context, path string, query url.Values, out any) error {
	g.path, g.query = path, query
	return json.Unmarshal([]byte(g.body), out)
}

func TestEndpointFetch(t *testing.T) {
	g := &fakeGetter{body: `{"content":[{"id":9,"name":"Frios","size":"G","packaging":"Caixa"}],
		"totalElements":1,"totalPages":1,"number":0,"size":10,"first":true,"last":true}`}
	e := ForEntity[types.Category](g, types.EntityCategories)

	res, err := e.Fetch(context.Background(), NewPageQuery(10).WithFilter("fri"))
	require.NoError(t, err)

	assert.Equal(t, "/categories", g.path)
	assert.Equal(t, "fri", g.query.Get("name"))
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Frios", res.Items[0].Name)
	assert.True(t, res.IsLast)
}

func TestEndpointCustomParams(t *testing.T) {
	g := &fakeGetter{body: `{"content":[],"totalElements":0,"totalPages":0}`}
	e := NewEndpoint[types.Product](g, "/products")
	e.Params = func(q PageQuery) url.Values {
		v := url.Values{}
		v.Set("q", q.FilterText)
		return v
	}

	_, err := e.Fetch(context.Background(), NewPageQuery(10).WithFilter("led"))
	require.NoError(t, err)
	assert.Equal(t, "led", g.query.Get("q"))
	assert.False(t, g.query.Has("page"))
}
