package reports

import (
	"fmt"
	"strings"
)

// Kind identifies one of the pre-aggregated reports.
type Kind string

const (
	PriceList  Kind = "PRICE_LIST"
	Balance    Kind = "BALANCE"
	LowStock   Kind = "LOW_STOCK"
	ByCategory Kind = "BY_CATEGORY"
	MostOutput Kind = "MOST_OUTPUT"
	MostInput  Kind = "MOST_INPUT"
)

var Kinds = []Kind{PriceList, Balance, LowStock, ByCategory, MostOutput, MostInput}

// Column is one rendered column of a report.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type kindInfo struct {
	label   string
	alias   string
	columns []Column
}

var kindInfos = map[Kind]kindInfo{
	PriceList: {
		label: "Lista de Preços",
		alias: "price-list",
		columns: []Column{
			{"name", "Nome do Produto"},
			{"category", "Categoria"},
			{"unitOfMeasure", "Unidade"},
			{"unitPrice", "Preço Unitário"},
		},
	},
	Balance: {
		label: "Balanço Físico/Financeiro",
		alias: "balance",
		columns: []Column{
			{"name", "Produto"},
			{"stockAvailable", "Qtd. Estoque"},
			{"totalValue", "Valor Total (Item)"},
		},
	},
	LowStock: {
		label: "Produtos Abaixo do Mínimo",
		alias: "low-stock",
		columns: []Column{
			{"name", "Produto"},
			{"minStockQuantity", "Estoque Mínimo"},
			{"quantity", "Estoque Atual"},
			{"status", "Situação"},
		},
	},
	ByCategory: {
		label: "Produtos por Categoria",
		alias: "by-category",
		columns: []Column{
			{"name", "Categoria"},
			{"quantity", "Quantidade de Produtos"},
		},
	},
	MostOutput: {
		label: "Maior Saída",
		alias: "most-output",
		columns: []Column{
			{"productName", "Produto"},
			{"totalQuantity", "Total Saídas"},
		},
	},
	MostInput: {
		label: "Maior Entrada",
		alias: "most-input",
		columns: []Column{
			{"productName", "Produto"},
			{"totalQuantity", "Total Entradas"},
		},
	},
}

// ParseKind accepts the canonical name (PRICE_LIST) or the CLI alias
// (price-list), case-insensitively.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, k := range Kinds {
		if string(k) == norm || strings.EqualFold(kindInfos[k].alias, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

func (k Kind) Valid() bool {
	_, ok := kindInfos[k]
	return ok
}

func (k Kind) Label() string { return kindInfos[k].label }

func (k Kind) Alias() string { return kindInfos[k].alias }

func (k Kind) Columns() []Column {
	return append([]Column(nil), kindInfos[k].columns...)
}

// Paged reports whether the backend pages this report.
func (k Kind) Paged() bool {
	return k != MostOutput && k != MostInput
}
