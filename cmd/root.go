package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║   ███████╗████████╗ ██████╗  ██████╗██╗  ██╗                 ║",
		"║   ██╔════╝╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝                 ║",
		"║   ███████╗   ██║   ██║   ██║██║     █████╔╝                  ║",
		"║   ╚════██║   ██║   ██║   ██║██║     ██╔═██╗                  ║",
		"║   ███████║   ██║   ╚██████╔╝╚██████╗██║  ██╗                 ║",
		"║   ╚══════╝   ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝  PANEL          ║",
		"║                                                              ║",
		"║        📦 Inventory dashboard for the terminal 📦            ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "stockpanel",
	Short: "Browse and manage an inventory backend from the terminal or the browser",
	Long: `
StockPanel is a client for an inventory management backend. It lists, filters
and edits products, categories and stock movements, shows the dashboard
aggregates and the six pre-aggregated reports, and exports reports to disk.

Surfaces:
- Paged tables and an interactive browser in the terminal
- A local web dashboard (stockpanel serve)
- Report exports in JSON, CSV, YAML and SQLite`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("StockPanel CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	RegisterBaseCommands()
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
	}
	godotenv.Load(".env.local")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".json"))
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
	}

	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
		viper.Set("log.level", lvl)
	}
}
