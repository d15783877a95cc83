// Package forms validates mutation payloads before they are sent to the
// backend. Errors are keyed by the payload's JSON field names.
package forms

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// DateLayout is the wire format of movementDate.
const DateLayout = "2006-01-02"

// MinMovementYear is the earliest year a movement may be dated.
const MinMovementYear = 1960

var (
	errRequired      = validation.NewError("required", "Campo obrigatório")
	errProduct       = validation.NewError("product_required", "Selecione um produto")
	errCategory      = validation.NewError("category_required", "Selecione uma categoria")
	errQuantity      = validation.NewError("quantity_positive", "Quantidade deve ser maior que 0")
	errNegative      = validation.NewError("not_negative", "Valor não pode ser negativo")
	errPrice         = validation.NewError("price_positive", "Preço deve ser maior que 0")
	errMaxBelowMin   = validation.NewError("max_below_min", "Quantidade máxima deve ser maior ou igual à mínima")
	errDateRequired  = validation.NewError("date_required", "Data é obrigatória")
	errDateYear      = validation.NewError("date_year", "Ano inválido. Deve ser 1960 ou posterior.")
	errMovementType  = validation.NewError("movement_type", "Tipo de movimentação inválido")
	errDateMalformed = validation.NewError("date_format", "Data inválida. Use o formato AAAA-MM-DD.")
)

func ValidateProduct(in types.ProductInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.ErrorObject(errRequired)),
		validation.Field(&in.UnitOfMeasure, validation.Required.ErrorObject(errRequired)),
		validation.Field(&in.UnitPrice, validation.By(positivePrice)),
		validation.Field(&in.AvailableStock, validation.Min(0).ErrorObject(errNegative)),
		validation.Field(&in.MinQuantity, validation.Min(0).ErrorObject(errNegative)),
		validation.Field(&in.MaxQuantity,
			validation.Min(0).ErrorObject(errNegative),
			validation.By(func(any) error {
				if in.MaxQuantity < in.MinQuantity {
					return errMaxBelowMin
				}
				return nil
			}),
		),
		validation.Field(&in.CategoryID, validation.Required.ErrorObject(errCategory), validation.Min(int64(1)).ErrorObject(errCategory)),
	)
}

func ValidateCategory(in types.CategoryInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.ErrorObject(errRequired)),
	)
}

func ValidateMovement(in types.MovementInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProductID, validation.Required.ErrorObject(errProduct), validation.Min(int64(1)).ErrorObject(errProduct)),
		validation.Field(&in.Quantity, validation.Required.ErrorObject(errQuantity), validation.Min(1).ErrorObject(errQuantity)),
		validation.Field(&in.MovementType, validation.By(func(v any) error {
			if t, _ := v.(types.MovementType); !t.Valid() {
				return errMovementType
			}
			return nil
		})),
		validation.Field(&in.MovementDate, validation.Required.ErrorObject(errDateRequired), validation.By(movementDate)),
	)
}

func positivePrice(v any) error {
	d, _ := v.(decimal.Decimal)
	if !d.IsPositive() {
		return errPrice
	}
	return nil
}

func movementDate(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return errDateMalformed
	}
	if t.Year() < MinMovementYear {
		return errDateYear
	}
	return nil
}

// Fields returns the field -> message map of a validation failure, or nil
// when err is not one.
func Fields(err error) map[string]string {
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for field, fe := range ve {
		var obj validation.Error
		if errors.As(fe, &obj) {
			out[field] = obj.Message()
			continue
		}
		out[field] = fe.Error()
	}
	return out
}

// IsValidation reports whether err came from one of the Validate functions.
func IsValidation(err error) bool {
	var ve validation.Errors
	return errors.As(err, &ve)
}
