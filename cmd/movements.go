package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

var movementColumns = []column[types.Movement]{
	{"ID", func(m types.Movement) string { return strconv.FormatInt(m.ID, 10) }},
	{"PRODUTO", func(m types.Movement) string { return m.Product.Name }},
	{"TIPO", func(m types.Movement) string { return movementTypeLabel(m.MovementType) }},
	{"QUANTIDADE", func(m types.Movement) string { return strconv.Itoa(m.Quantity) }},
	{"DATA", func(m types.Movement) string { return m.MovementDate }},
}

func movementTypeLabel(t types.MovementType) string {
	if t == types.MovementEntry {
		return color.GreenString("Entrada")
	}
	return color.RedString("Saída")
}

const movementDeleteWarning = "Excluir uma movimentação desfaz a alteração de estoque que ela causou."

var movementsCmd = &cobra.Command{
	Use:     "movements",
	Aliases: []string{"movimentacoes"},
	Short:   "List and record stock movements",
}

var movementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock movements page by page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, types.EntityMovements, movementColumns)
	},
}

var movementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a stock entry or exit",
	Long: `
Record a stock movement. The backend applies the stock change.

Examples:
  stockpanel movements create --product 7 --type entry --quantity 10
  stockpanel movements create --product-name "Caneta azul" --type exit --quantity 2
  stockpanel movements create --product 7 --type exit --quantity 2 --date 2024-05-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveMovement(cmd, 0)
	},
}

var movementsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a movement's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return saveMovement(cmd, id)
	},
}

var movementsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a movement and undo its stock change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, types.EntityMovements, args[0], movementDeleteWarning)
	},
}

// productOptionsSize matches the page size of the studio's product picker.
const productOptionsSize = 20

func saveMovement(cmd *cobra.Command, id int64) error {
	f := cmd.Flags()
	product, _ := f.GetInt64("product")
	productName, _ := f.GetString("product-name")
	quantity, _ := f.GetInt("quantity")
	kind, _ := f.GetString("type")
	date, _ := f.GetString("date")
	if date == "" {
		date = time.Now().Format(forms.DateLayout)
	}
	if product != 0 && productName != "" {
		return fmt.Errorf("use either --product or --product-name")
	}

	env, err := loadRuntime()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	if productName != "" {
		p, err := resolveProduct(ctx, env.client, productName)
		if err != nil {
			if api.IsNetwork(err) || api.IsServer(err) {
				return reportFailure(err, "Erro ao buscar produto")
			}
			color.Red("❌ %v", err)
			return err
		}
		color.New(color.FgHiBlack).Printf("produto #%d %s\n", p.ID, p.Name)
		product = p.ID
	}

	in := types.MovementInput{
		ProductID:    product,
		Quantity:     quantity,
		MovementType: types.MovementType(strings.ToUpper(strings.TrimSpace(kind))),
		MovementDate: date,
	}
	if err := forms.ValidateMovement(in); err != nil {
		return reportFailure(err, "")
	}

	var saved *types.Movement
	if id == 0 {
		saved, err = env.client.CreateMovement(ctx, in)
	} else {
		saved, err = env.client.UpdateMovement(ctx, id, in)
	}
	if err != nil {
		return reportFailure(err, "Erro ao salvar movimentação")
	}

	if id == 0 {
		printSaved("criado", saved.ID)
	} else {
		printSaved("atualizado", id)
	}
	return nil
}

// resolveProduct looks a product up by name through one page of
// name-filtered options. An exact (case-insensitive) match wins, then a
// single result; anything else is ambiguous.
func resolveProduct(ctx context.Context, g listview.Getter, name string) (types.Product, error) {
	name = strings.TrimSpace(name)
	q := listview.NewPageQuery(productOptionsSize).WithFilter(name)
	page, err := listview.ForEntity[types.Product](g, types.EntityProducts).Fetch(ctx, q)
	if err != nil {
		return types.Product{}, err
	}

	for _, p := range page.Items {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p, nil
		}
	}
	switch len(page.Items) {
	case 0:
		return types.Product{}, fmt.Errorf("nenhum produto encontrado para %q", name)
	case 1:
		return page.Items[0], nil
	}

	shown := page.Items
	if len(shown) > 5 {
		shown = shown[:5]
	}
	names := make([]string, len(shown))
	for i, p := range shown {
		names[i] = fmt.Sprintf("#%d %s", p.ID, p.Name)
	}
	return types.Product{}, fmt.Errorf("%d produtos correspondem a %q (%s); use --product", page.TotalItems, name, strings.Join(names, ", "))
}

func addMovementFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("product", 0, "Product ID")
	cmd.Flags().String("product-name", "", "Product name, resolved through a name search")
	cmd.Flags().Int("quantity", 0, "Quantity moved")
	cmd.Flags().String("type", string(types.MovementEntry), "ENTRY or EXIT")
	cmd.Flags().String("date", "", "Movement date as YYYY-MM-DD (default today)")
}

func init() {
	addListFlags(movementsListCmd)
	addMovementFlags(movementsCreateCmd)
	addMovementFlags(movementsUpdateCmd)

	movementsCmd.AddCommand(movementsListCmd, movementsCreateCmd, movementsUpdateCmd, movementsDeleteCmd)
}
