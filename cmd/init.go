package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
	"github.com/Lumos-Labs-HQ/stockpanel/template"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a StockPanel config in the current directory",
	Long: `
Write stockpanel.config.json, the exports directory and an .env entry for the
API token.

Examples:
  stockpanel init
  stockpanel init --base-url http://inventory.local:8080
  stockpanel init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(template.NewProjectTemplate(baseURL), force)
	},
}

func init() {
	initCmd.Flags().String("base-url", "", "Inventory API base URL (default http://localhost:8080)")
}

func initializeProject(tmpl *template.ProjectTemplate, force bool) error {
	if config.IsInitialized() && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(config.FileName, []byte(tmpl.GetConfig()), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", config.FileName, err)
	}

	if err := handleEnvFile(tmpl.TokenEnv, tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ StockPanel initialized for %s", tmpl.BaseURL)
	fmt.Println()
	fmt.Println("📁 Directories created:")
	for _, dir := range directories {
		fmt.Printf("   %s/\n", dir)
	}
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.FileName)

	if os.Getenv(tmpl.TokenEnv) != "" {
		fmt.Println()
		fmt.Printf("ℹ️  Using existing %s from environment\n", tmpl.TokenEnv)
	}

	fmt.Println()
	fmt.Println("🚀 Next steps:")
	fmt.Println("   stockpanel dashboard            # Check the backend is reachable")
	fmt.Println("   stockpanel products list        # Browse products")
	fmt.Println("   stockpanel serve                # Open the web dashboard")
	return nil
}

// handleEnvFile appends the token entry to .env unless it is already there.
func handleEnvFile(key, content string) error {
	envPath := ".env"

	existing, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(content), 0644)
		}
		return err
	}

	existingStr := string(existing)
	if strings.Contains(existingStr, key) {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by StockPanel\n" + content

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
