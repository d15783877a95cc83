package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
)

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Show one of the inventory reports",
	Long: `
Show a pre-aggregated report. Kinds:
  price-list    Lista de Preços
  balance       Balanço Físico/Financeiro
  low-stock     Produtos Abaixo do Mínimo
  by-category   Produtos por Categoria
  most-output   Maior Saída
  most-input    Maior Entrada

Examples:
  stockpanel report balance
  stockpanel report price-list --page 2 --size 50
  stockpanel report LOW_STOCK --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := reports.ParseKind(args[0])
		if err != nil {
			return err
		}

		env, err := loadRuntime()
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = env.cfg.Reports.PageSize
		}

		ctx, cancel := commandContext()
		defer cancel()

		res, err := reports.NewAdapter(env.client).Load(ctx, kind, page-1, size)
		if err != nil {
			return reportFailure(err, reports.DefaultMessage)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		color.New(color.Bold).Printf("📊 %s\n\n", kind.Label())
		printTable(os.Stdout, reportColumns(kind), res.Rows)

		if total, ok := res.Summary[reports.SummaryTotalValue]; ok {
			fmt.Printf("\nValor total do estoque: %s\n", color.GreenString(formatBRL(total)))
		}
		if res.PageInfo != nil {
			fmt.Println()
			color.New(color.FgHiBlack).Println(pagerFooter(*res.PageInfo))
		}
		return nil
	},
}

func reportColumns(kind reports.Kind) []column[reports.Row] {
	defs := kind.Columns()
	cols := make([]column[reports.Row], len(defs))
	for i, def := range defs {
		key := def.Key
		cols[i] = column[reports.Row]{
			header: strings.ToUpper(def.Label),
			value:  func(r reports.Row) string { return reportCell(r.Field(key)) },
		}
	}
	return cols
}

func reportCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case decimal.Decimal:
		return formatBRL(x)
	default:
		return fmt.Sprint(x)
	}
}

func init() {
	reportCmd.Flags().Int("page", 1, "Page number for paged reports")
	reportCmd.Flags().Int("size", 0, "Page size (default reports.page_size)")
	reportCmd.Flags().Bool("json", false, "Print the normalized report as JSON")
}
