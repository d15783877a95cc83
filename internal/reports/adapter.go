package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

const DefaultMessage = "Não foi possível carregar os dados do relatório. Verifique se o backend está rodando."

// SummaryTotalValue is the summary key of the balance report's stock value.
const SummaryTotalValue = "totalValue"

// Result is the normalized shape every report is rendered from. PageInfo is
// nil for reports the backend does not page.
type Result struct {
	Kind     Kind                       `json:"kind"`
	Rows     []Row                      `json:"rows"`
	PageInfo *listview.PageInfo         `json:"pageInfo"`
	Summary  map[string]decimal.Decimal `json:"summary"`
}

func emptyResult(k Kind) Result {
	return Result{Kind: k, Rows: []Row{}, Summary: map[string]decimal.Decimal{}}
}

// FetchError is a failed report load. Message is safe to show to users.
type FetchError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("report %s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type decodeFunc func(raw json.RawMessage) (Result, error)

type source struct {
	path   string
	decode decodeFunc
}

var sources = map[Kind]source{
	PriceList:  {"/reports/price-list", decodePaged[PriceListRow]},
	Balance:    {"/reports/inventory-balance", decodeBalance},
	LowStock:   {"/reports/low-stock-products", decodePaged[LowStockRow]},
	ByCategory: {"/reports/products-by-category", decodePaged[CategoryCountRow]},
	MostOutput: {"/reports/most-output-product", decodeList[MovementRankRow]},
	MostInput:  {"/reports/most-input-product", decodeList[MovementRankRow]},
}

// Path returns the backend path of a report kind.
func Path(k Kind) string { return sources[k].path }

func toRows[R Row](in []R) []Row {
	out := make([]Row, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

func decodePaged[R Row](raw json.RawMessage) (Result, error) {
	var page types.PageResponse[R]
	if err := json.Unmarshal(raw, &page); err != nil {
		return Result{}, err
	}
	info := listview.PageInfoFromResponse(page)
	return Result{
		Rows:     toRows(page.Content),
		PageInfo: &info,
		Summary:  map[string]decimal.Decimal{},
	}, nil
}

func decodeBalance(raw json.RawMessage) (Result, error) {
	var body struct {
		StockValue decimal.Decimal                `json:"stockValue"`
		Items      types.PageResponse[BalanceRow] `json:"items"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Result{}, err
	}
	info := listview.PageInfoFromResponse(body.Items)
	return Result{
		Rows:     toRows(body.Items.Content),
		PageInfo: &info,
		Summary:  map[string]decimal.Decimal{SummaryTotalValue: body.StockValue},
	}, nil
}

func decodeList[R Row](raw json.RawMessage) (Result, error) {
	var rows []R
	if err := json.Unmarshal(raw, &rows); err != nil {
		return Result{}, err
	}
	return Result{Rows: toRows(rows), Summary: map[string]decimal.Decimal{}}, nil
}

// Adapter loads any report kind and normalizes it into a Result.
type Adapter struct {
	getter listview.Getter
}

func NewAdapter(g listview.Getter) *Adapter {
	return &Adapter{getter: g}
}

// Load fetches one page of a report. page and size are ignored by the
// unpaged kinds. On failure the returned Result is empty, never partial.
func (a *Adapter) Load(ctx context.Context, kind Kind, page, size int) (Result, error) {
	src, ok := sources[kind]
	if !ok {
		return emptyResult(kind), &FetchError{Kind: kind, Message: DefaultMessage, Err: fmt.Errorf("unknown report kind %q", kind)}
	}

	var query url.Values
	if kind.Paged() {
		if page < 0 {
			page = 0
		}
		query = url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(size))
	}

	var raw json.RawMessage
	if err := a.getter.GetJSON(ctx, src.path, query, &raw); err != nil {
		return emptyResult(kind), &FetchError{Kind: kind, Message: DefaultMessage, Err: err}
	}

	res, err := src.decode(raw)
	if err != nil {
		return emptyResult(kind), &FetchError{Kind: kind, Message: DefaultMessage, Err: fmt.Errorf("decode %s: %w", src.path, err)}
	}
	res.Kind = kind
	if res.Rows == nil {
		res.Rows = []Row{}
	}
	return res, nil
}

// LoadAll walks every page of a paged report and concatenates the rows.
// Unpaged kinds return their single response.
func (a *Adapter) LoadAll(ctx context.Context, kind Kind, size int) (Result, error) {
	first, err := a.Load(ctx, kind, 0, size)
	if err != nil || first.PageInfo == nil || first.PageInfo.TotalPages <= 1 {
		return first, err
	}

	pages, err := a.loadPages(ctx, kind, size, first.PageInfo.TotalPages)
	if err != nil {
		return emptyResult(kind), err
	}

	all := first
	for _, p := range pages {
		all.Rows = append(all.Rows, p.Rows...)
	}
	info := listview.NewPageInfo(0, len(all.Rows), first.PageInfo.TotalItems, 1)
	all.PageInfo = &info
	return all, nil
}
