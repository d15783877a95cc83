package studio

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// ViewState is the JSON snapshot the browser renders a list from.
type ViewState struct {
	Entity        types.Entity       `json:"entity"`
	Query         listview.PageQuery `json:"query"`
	PageInfo      listview.PageInfo  `json:"pageInfo"`
	Items         any                `json:"items"`
	HasPage       bool               `json:"hasPage"`
	Loading       bool               `json:"loading"`
	Status        listview.Status    `json:"status"`
	Error         string             `json:"error,omitempty"`
	FilterInput   string             `json:"filterInput"`
	FilterPending bool               `json:"filterPending"`
	Reload        uint64             `json:"reload"`
	Version       uint64             `json:"version"`
}

// entityView erases the item type of a controller so a session can hold the
// three collections side by side.
type entityView interface {
	State() ViewState
	Wait(ctx context.Context, after uint64) (ViewState, error)
	SetPage(n int)
	NextPage()
	PrevPage()
	Filter(text string, immediate bool)
	SetSort(key string, dir listview.SortDirection)
	SetPageSize(n int)
	Reload()
	Close()
}

type viewConfig struct {
	pageSize int
	debounce time.Duration
	log      logrus.FieldLogger
}

type controllerView[T any] struct {
	entity types.Entity
	ctl    *listview.Controller[T]
	filter *listview.Debouncer
}

func newControllerView[T any](entity types.Entity, f listview.Fetcher[T], token *listview.ReloadToken, cfg viewConfig) *controllerView[T] {
	ctl := listview.NewController[T](f, listview.NewPageQuery(cfg.pageSize),
		listview.WithLogger(cfg.log.WithField("entity", entity)))
	ctl.Bind(token)
	v := &controllerView[T]{
		entity: entity,
		ctl:    ctl,
		filter: ctl.DebounceFilter(cfg.debounce),
	}
	ctl.Refresh()
	return v
}

func (v *controllerView[T]) State() ViewState {
	return v.toView(v.ctl.Snapshot())
}

func (v *controllerView[T]) Wait(ctx context.Context, after uint64) (ViewState, error) {
	st, err := v.ctl.Wait(ctx, after)
	return v.toView(st), err
}

func (v *controllerView[T]) SetPage(n int) { v.ctl.SetPage(n) }
func (v *controllerView[T]) NextPage()     { v.ctl.NextPage() }
func (v *controllerView[T]) PrevPage()     { v.ctl.PrevPage() }

func (v *controllerView[T]) Filter(text string, immediate bool) {
	v.filter.Submit(text)
	if immediate {
		v.filter.Flush()
	}
}

func (v *controllerView[T]) SetSort(key string, dir listview.SortDirection) { v.ctl.SetSort(key, dir) }
func (v *controllerView[T]) SetPageSize(n int)                              { v.ctl.SetPageSize(n) }
func (v *controllerView[T]) Reload()                                        { v.ctl.NotifyExternalChange() }
func (v *controllerView[T]) Close()                                         { v.ctl.Close() }

func (v *controllerView[T]) toView(st listview.State[T]) ViewState {
	out := ViewState{
		Entity:        v.entity,
		Query:         st.Query,
		PageInfo:      st.Page.PageInfo,
		Items:         st.Page.Items,
		HasPage:       st.HasPage,
		Loading:       st.Loading,
		Status:        st.Status,
		FilterInput:   v.filter.Current(),
		FilterPending: v.filter.Pending(),
		Reload:        st.Reload,
		Version:       st.Version,
	}
	if st.Page.Items == nil {
		out.Items = []T{}
	}
	if st.Err != nil {
		out.Error = api.UserMessage(st.Err, loadErrorMessage(v.entity))
	}
	return out
}

func loadErrorMessage(e types.Entity) string {
	switch e {
	case types.EntityProducts:
		return "Erro ao carregar produtos"
	case ProductOptions:
		return "Erro ao carregar opções de produtos"
	case types.EntityCategories:
		return "Erro ao carregar categorias"
	case types.EntityMovements:
		return "Erro ao carregar movimentações"
	}
	return "Erro ao carregar dados"
}
