package forms

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

func validProduct() types.ProductInput {
	return types.ProductInput{
		Name:           "Caneta",
		UnitPrice:      decimal.RequireFromString("3.50"),
		UnitOfMeasure:  "UN",
		AvailableStock: 10,
		MinQuantity:    5,
		MaxQuantity:    50,
		CategoryID:     1,
	}
}

func TestValidateProduct(t *testing.T) {
	require.NoError(t, ValidateProduct(validProduct()))

	in := validProduct()
	in.Name = ""
	in.UnitPrice = decimal.Zero
	in.MaxQuantity = 2
	in.CategoryID = 0

	err := ValidateProduct(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	fields := Fields(err)
	assert.Equal(t, "Campo obrigatório", fields["name"])
	assert.Equal(t, "Preço deve ser maior que 0", fields["unitPrice"])
	assert.Equal(t, "Quantidade máxima deve ser maior ou igual à mínima", fields["maxQuantity"])
	assert.Equal(t, "Selecione uma categoria", fields["categoryId"])
	assert.NotContains(t, fields, "unitOfMeasure")
}

func TestValidateCategory(t *testing.T) {
	require.NoError(t, ValidateCategory(types.CategoryInput{Name: "Papelão", Size: "Pequeno", Packaging: "Caixa"}))

	fields := Fields(ValidateCategory(types.CategoryInput{Size: "Grande"}))
	assert.Equal(t, map[string]string{"name": "Campo obrigatório"}, fields)
}

func TestValidateMovement(t *testing.T) {
	ok := types.MovementInput{ProductID: 7, Quantity: 3, MovementType: types.MovementEntry, MovementDate: "2024-05-01"}
	require.NoError(t, ValidateMovement(ok))

	cases := []struct {
		name  string
		edit  func(*types.MovementInput)
		field string
		msg   string
	}{
		{"missing product", func(m *types.MovementInput) { m.ProductID = 0 }, "productId", "Selecione um produto"},
		{"zero quantity", func(m *types.MovementInput) { m.Quantity = 0 }, "quantity", "Quantidade deve ser maior que 0"},
		{"negative quantity", func(m *types.MovementInput) { m.Quantity = -4 }, "quantity", "Quantidade deve ser maior que 0"},
		{"missing date", func(m *types.MovementInput) { m.MovementDate = "" }, "movementDate", "Data é obrigatória"},
		{"old date", func(m *types.MovementInput) { m.MovementDate = "1959-12-31" }, "movementDate", "Ano inválido. Deve ser 1960 ou posterior."},
		{"bad date", func(m *types.MovementInput) { m.MovementDate = "01/05/2024" }, "movementDate", "Data inválida. Use o formato AAAA-MM-DD."},
		{"bad type", func(m *types.MovementInput) { m.MovementType = "TRANSFER" }, "movementType", "Tipo de movimentação inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := ok
			tc.edit(&in)
			fields := Fields(ValidateMovement(in))
			require.Len(t, fields, 1)
			assert.Equal(t, tc.msg, fields[tc.field])
		})
	}
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
	assert.Nil(t, Fields(nil))
	assert.False(t, IsValidation(errors.New("boom")))
}
