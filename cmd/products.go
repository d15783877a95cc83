package cmd

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

var productColumns = []column[types.Product]{
	{"ID", func(p types.Product) string { return strconv.FormatInt(p.ID, 10) }},
	{"NOME", func(p types.Product) string { return p.Name }},
	{"CATEGORIA", func(p types.Product) string { return p.CategoryName() }},
	{"PREÇO", func(p types.Product) string { return formatBRL(p.UnitPrice) }},
	{"UNIDADE", func(p types.Product) string { return p.UnitOfMeasure }},
	{"ESTOQUE", func(p types.Product) string { return strconv.Itoa(p.AvailableStock) }},
	{"MÍN/MÁX", func(p types.Product) string { return fmt.Sprintf("%d/%d", p.MinQuantity, p.MaxQuantity) }},
}

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"produtos"},
	Short:   "List and edit products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products page by page",
	Long: `
List products with paging, name filter and sorting.

Examples:
  stockpanel products list
  stockpanel products list --name caneta --sort unitPrice,desc
  stockpanel products list --page 2 --size 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, types.EntityProducts, productColumns)
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveProduct(cmd, 0)
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a product's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return saveProduct(cmd, id)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, types.EntityProducts, args[0], "")
	},
}

func productInputFromFlags(cmd *cobra.Command) (types.ProductInput, error) {
	f := cmd.Flags()
	name, _ := f.GetString("name")
	rawPrice, _ := f.GetString("price")
	unit, _ := f.GetString("unit")
	stock, _ := f.GetInt("stock")
	minQty, _ := f.GetInt("min")
	maxQty, _ := f.GetInt("max")
	category, _ := f.GetInt64("category")

	price := decimal.Zero
	if rawPrice != "" {
		p, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return types.ProductInput{}, fmt.Errorf("invalid --price %q", rawPrice)
		}
		price = p
	}

	return types.ProductInput{
		Name:           name,
		UnitPrice:      price,
		UnitOfMeasure:  unit,
		AvailableStock: stock,
		MinQuantity:    minQty,
		MaxQuantity:    maxQty,
		CategoryID:     category,
	}, nil
}

func saveProduct(cmd *cobra.Command, id int64) error {
	in, err := productInputFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := forms.ValidateProduct(in); err != nil {
		return reportFailure(err, "")
	}

	env, err := loadRuntime()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	var saved *types.Product
	if id == 0 {
		saved, err = env.client.CreateProduct(ctx, in)
	} else {
		saved, err = env.client.UpdateProduct(ctx, id, in)
	}
	if err != nil {
		return reportFailure(err, "Erro ao salvar produto")
	}

	if id == 0 {
		printSaved("criado", saved.ID)
	} else {
		printSaved("atualizado", id)
	}
	return nil
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("price", "", "Unit price, e.g. 12.50")
	cmd.Flags().String("unit", "UN", "Unit of measure")
	cmd.Flags().Int("stock", 0, "Available stock")
	cmd.Flags().Int("min", 0, "Minimum quantity")
	cmd.Flags().Int("max", 0, "Maximum quantity")
	cmd.Flags().Int64("category", 0, "Category ID")
}

func init() {
	addListFlags(productsListCmd)
	addProductFlags(productsCreateCmd)
	addProductFlags(productsUpdateCmd)

	productsCmd.AddCommand(productsListCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)
}
