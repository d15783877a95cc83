package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/studio"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"studio"},
	Short:   "Open the StockPanel web dashboard",
	Long: `
Start a local web dashboard for the inventory backend: the aggregates, the
three editable tables and the reports.

Each browser session gets its own paged views; edits refresh every dependent
table.

Examples:
  stockpanel serve
  stockpanel serve --port 3000 --browser=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime()
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		browser, _ := cmd.Flags().GetBool("browser")

		server, err := studio.New(env.cfg, env.log, port)
		if err != nil {
			return err
		}
		return server.Start(browser)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default studio.port)")
	serveCmd.Flags().BoolP("browser", "b", true, "Open browser automatically")
}
