package reports

import (
	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// Row is one typed report line. Field returns the value for a column key.
type Row interface {
	Field(key string) any
}

type PriceListRow struct {
	Name          string          `json:"name"`
	Category      *types.Category `json:"category,omitempty"`
	UnitOfMeasure string          `json:"unitOfMeasure"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

func (r PriceListRow) Field(key string) any {
	switch key {
	case "name":
		return r.Name
	case "category":
		if r.Category == nil || r.Category.Name == "" {
			return "Sem Categoria"
		}
		return r.Category.Name
	case "unitOfMeasure":
		return r.UnitOfMeasure
	case "unitPrice":
		return r.UnitPrice
	}
	return nil
}

type BalanceRow struct {
	Name           string          `json:"name"`
	StockAvailable int             `json:"stockAvailable"`
	TotalValue     decimal.Decimal `json:"totalValue"`
}

func (r BalanceRow) Field(key string) any {
	switch key {
	case "name":
		return r.Name
	case "stockAvailable":
		return r.StockAvailable
	case "totalValue":
		return r.TotalValue
	}
	return nil
}

type LowStockRow struct {
	Name             string `json:"name"`
	MinStockQuantity int    `json:"minStockQuantity"`
	Quantity         int    `json:"quantity"`
}

func (r LowStockRow) Field(key string) any {
	switch key {
	case "name":
		return r.Name
	case "minStockQuantity":
		return r.MinStockQuantity
	case "quantity":
		return r.Quantity
	case "status":
		return "Repor Estoque"
	}
	return nil
}

type CategoryCountRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (r CategoryCountRow) Field(key string) any {
	switch key {
	case "name":
		return r.Name
	case "quantity":
		return r.Quantity
	}
	return nil
}

type MovementRankRow struct {
	ProductName   string `json:"productName"`
	TotalQuantity int    `json:"totalQuantity"`
}

func (r MovementRankRow) Field(key string) any {
	switch key {
	case "productName":
		return r.ProductName
	case "totalQuantity":
		return r.TotalQuantity
	}
	return nil
}

// Record flattens a row into column key -> value for the given kind.
func Record(k Kind, r Row) map[string]any {
	cols := k.Columns()
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c.Key] = r.Field(c.Key)
	}
	return out
}
