package cmd

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// catalogGetter answers product pages from a fixed list, filtering by the
// name parameter the way the backend does.
type catalogGetter struct {
	products []types.Product
	queries  []url.Values
}

func (g *catalogGetter) GetJSON(_ context.Context, path string, query url.Values, out any) error {
	g.queries = append(g.queries, query)
	name := strings.ToLower(query.Get("name"))
	var hits []types.Product
	for _, p := range g.products {
		if strings.Contains(strings.ToLower(p.Name), name) {
			hits = append(hits, p)
		}
	}
	*out.(*types.PageResponse[types.Product]) = types.PageResponse[types.Product]{
		Content:       hits,
		TotalElements: len(hits),
		TotalPages:    1,
		Size:          productOptionsSize,
	}
	return nil
}

func TestResolveProduct(t *testing.T) {
	g := &catalogGetter{products: []types.Product{
		{ID: 1, Name: "Caneta"},
		{ID: 2, Name: "Caneta azul"},
		{ID: 3, Name: "Caderno"},
	}}
	ctx := context.Background()

	p, err := resolveProduct(ctx, g, "  caneta ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID, "exact match wins over a longer name")

	p, err = resolveProduct(ctx, g, "cader")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	_, err = resolveProduct(ctx, g, "can")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#2 Caneta azul")

	_, err = resolveProduct(ctx, g, "lápis")
	assert.ErrorContains(t, err, "nenhum produto")

	last := g.queries[len(g.queries)-1]
	assert.Equal(t, "lápis", last.Get("name"))
	assert.Equal(t, "20", last.Get("size"))
	assert.Equal(t, "0", last.Get("page"))
}
