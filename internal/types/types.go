package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Packaging string `json:"packaging"`
}

type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	UnitOfMeasure  string          `json:"unitOfMeasure"`
	AvailableStock int             `json:"availableStock"`
	MinQuantity    int             `json:"minQuantity"`
	MaxQuantity    int             `json:"maxQuantity"`
	Category       *Category       `json:"category,omitempty"`
}

// CategoryName returns the category label shown in tables.
func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return "Sem Categoria"
	}
	return p.Category.Name
}

type MovementType string

const (
	MovementEntry MovementType = "ENTRY"
	MovementExit  MovementType = "EXIT"
)

func (t MovementType) Valid() bool {
	return t == MovementEntry || t == MovementExit
}

type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Movement struct {
	ID           int64        `json:"id"`
	Product      ProductRef   `json:"product"`
	MovementDate string       `json:"movementDate"`
	Quantity     int          `json:"quantity"`
	MovementType MovementType `json:"movementType"`
	Status       string       `json:"status"`
}

type Dashboard struct {
	TotalProducts     int             `json:"totalProducts"`
	LowStockProducts  int             `json:"lowStockProducts"`
	HighStockProducts int             `json:"highStockProducts"`
	TotalStockValue   decimal.Decimal `json:"totalStockValue"`
}

// PageResponse is the paging envelope returned by every collection endpoint.
type PageResponse[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

type ProductInput struct {
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	UnitOfMeasure  string          `json:"unitOfMeasure"`
	AvailableStock int             `json:"availableStock"`
	MinQuantity    int             `json:"minQuantity"`
	MaxQuantity    int             `json:"maxQuantity"`
	CategoryID     int64           `json:"categoryId"`
}

type CategoryInput struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Packaging string `json:"packaging"`
}

type MovementInput struct {
	ProductID    int64        `json:"productId"`
	Quantity     int          `json:"quantity"`
	MovementType MovementType `json:"movementType"`
	MovementDate string       `json:"movementDate"`
}

// Entity names the three editable collections.
type Entity string

const (
	EntityProducts   Entity = "products"
	EntityCategories Entity = "categories"
	EntityMovements  Entity = "movements"
)

func (e Entity) Valid() bool {
	switch e {
	case EntityProducts, EntityCategories, EntityMovements:
		return true
	}
	return false
}

// Path is the backend collection path for the entity.
func (e Entity) Path() string {
	return "/" + string(e)
}

// ItemPath is the backend path for a single record.
func (e Entity) ItemPath(id int64) string {
	return e.Path() + "/" + strconv.FormatInt(id, 10)
}
