package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
)

func TestNavHint(t *testing.T) {
	assert.Equal(t, "n próxima", navHint(listview.NewPageInfo(0, 20, 24, 2)))
	assert.Equal(t, "p anterior · n próxima", navHint(listview.NewPageInfo(1, 10, 24, 3)))
	assert.Equal(t, "p anterior", navHint(listview.NewPageInfo(2, 10, 24, 3)))
	assert.Empty(t, navHint(listview.NewPageInfo(0, 20, 0, 0)))
}

func TestBrowserAwaitWakesOnChange(t *testing.T) {
	release := make(chan struct{})
	f := listview.FetcherFunc[string](func(ctx context.Context, q listview.PageQuery) (listview.PageResult[string], error) {
		select {
		case <-release:
		case <-ctx.Done():
			return listview.PageResult[string]{}, ctx.Err()
		}
		return listview.PageResult[string]{
			PageInfo: listview.NewPageInfo(q.PageIndex, q.PageSize, 1, 1),
			Items:    []string{"Caneta"},
		}, nil
	})
	ctl := listview.NewController[string](f, listview.NewPageQuery(10))
	defer ctl.Close()

	b := &browser[string]{ctl: ctl, wake: make(chan struct{}, 1)}
	b.watch()
	ctl.Refresh()
	require.True(t, ctl.Snapshot().Loading)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	st, err := b.await(ctx, func(st listview.State[string]) bool { return !st.Loading })
	require.NoError(t, err)
	assert.True(t, st.HasPage)
	assert.Equal(t, []string{"Caneta"}, st.Page.Items)
}

func TestBrowserAwaitHonoursContext(t *testing.T) {
	ctl := listview.NewController[string](listview.FetcherFunc[string](func(ctx context.Context, q listview.PageQuery) (listview.PageResult[string], error) {
		<-ctx.Done()
		return listview.PageResult[string]{}, ctx.Err()
	}), listview.NewPageQuery(10))
	defer ctl.Close()

	b := &browser[string]{ctl: ctl, wake: make(chan struct{}, 1)}
	b.watch()
	ctl.Refresh()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := b.await(ctx, func(st listview.State[string]) bool { return st.HasPage })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
