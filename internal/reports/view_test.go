package reports

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewKindSwitchResetsPage(t *testing.T) {
	g := &stubGetter{bodies: map[string]func(url.Values) string{
		"/reports/low-stock-products": constBody(`{"content": [{"name": "Caneta", "minStockQuantity": 10, "quantity": 2}],
			"totalElements": 41, "totalPages": 3, "number": 2, "size": 20}`),
		"/reports/most-input-product": constBody(`[{"productName": "Caderno", "totalQuantity": 9}]`),
	}}
	v := NewView(NewAdapter(g), LowStock, 20)

	snap := v.SetPage(context.Background(), 2)
	assert.Equal(t, 2, snap.Page)
	assert.False(t, snap.Loading)
	require.Len(t, snap.Result.Rows, 1)

	snap = v.SetKind(context.Background(), MostInput)
	assert.Equal(t, MostInput, snap.Kind)
	assert.Equal(t, 0, snap.Page)
	assert.Nil(t, snap.Result.PageInfo)
	require.Len(t, snap.Result.Rows, 1)
	_, isRank := snap.Result.Rows[0].(MovementRankRow)
	assert.True(t, isRank)
}

func TestViewErrorClearsRows(t *testing.T) {
	g := &stubGetter{bodies: map[string]func(url.Values) string{
		"/reports/price-list": constBody(`{"content": [{"name": "Caneta", "unitOfMeasure": "UN", "unitPrice": 1}],
			"totalElements": 1, "totalPages": 1, "number": 0, "size": 20}`),
	}}
	v := NewView(NewAdapter(g), PriceList, 20)

	snap := v.Load(context.Background(), PriceList, 0, 20)
	require.Len(t, snap.Result.Rows, 1)
	assert.Empty(t, snap.Error)

	g.err = errors.New("down")
	snap = v.SetPage(context.Background(), 0)
	assert.Equal(t, DefaultMessage, snap.Error)
	assert.Empty(t, snap.Result.Rows)
	assert.Nil(t, snap.Result.PageInfo)
	assert.Equal(t, snap, v.Snapshot())
}
