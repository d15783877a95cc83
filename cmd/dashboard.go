package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the inventory aggregates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()

		d, err := env.client.Dashboard(ctx)
		if err != nil {
			return reportFailure(err, "Erro ao carregar o dashboard")
		}

		bold := color.New(color.Bold)
		bold.Println("📦 Estoque")
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintf(tw, "   Total de produtos\t%d\n", d.TotalProducts)
		fmt.Fprintf(tw, "   Abaixo do mínimo\t%s\n", color.RedString("%d", d.LowStockProducts))
		fmt.Fprintf(tw, "   Acima do máximo\t%s\n", color.YellowString("%d", d.HighStockProducts))
		fmt.Fprintf(tw, "   Valor total em estoque\t%s\n", color.GreenString(formatBRL(d.TotalStockValue)))
		return tw.Flush()
	},
}
