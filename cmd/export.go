package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/export"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
)

var exportCmd = &cobra.Command{
	Use:   "export [report|all]",
	Short: "Export reports to disk",
	Long: `
Export one report, or all of them, to the export directory.
Supported formats: json (default), csv, yaml, sqlite

Examples:
  stockpanel export
  stockpanel export balance --format csv
  stockpanel export all --format sqlite --all-pages
  stockpanel export price-list --out ./snapshots`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime()
		if err != nil {
			return err
		}

		kinds, err := exportKinds(args)
		if err != nil {
			return err
		}

		rawFormat, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(rawFormat)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("out")
		if dir == "" {
			if err := env.cfg.EnsureExportDir(); err != nil {
				return fmt.Errorf("failed to create export directory: %w", err)
			}
			dir = env.cfg.ExportPath
		}

		page, _ := cmd.Flags().GetInt("page")
		allPages, _ := cmd.Flags().GetBool("all-pages")

		ctx, cancel := commandContext()
		defer cancel()

		path, err := export.PerformExport(ctx, reports.NewAdapter(env.client), export.Options{
			Kinds:    kinds,
			Format:   format,
			Dir:      dir,
			Page:     page - 1,
			PageSize: env.cfg.Reports.PageSize,
			AllPages: allPages,
			Logger:   env.log,
		})
		if err != nil {
			return reportFailure(err, reports.DefaultMessage)
		}

		color.Green("✅ Export completed: %s", path)
		return nil
	},
}

// exportKinds resolves the positional argument; none or "all" selects every
// report.
func exportKinds(args []string) ([]reports.Kind, error) {
	if len(args) == 0 || strings.EqualFold(args[0], "all") {
		return reports.Kinds, nil
	}
	kind, err := reports.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []reports.Kind{kind}, nil
}

func init() {
	exportCmd.Flags().String("format", string(export.FormatJSON), "Output format: json, csv, yaml or sqlite")
	exportCmd.Flags().String("out", "", "Output directory (default export_path)")
	exportCmd.Flags().Int("page", 1, "Page of paged reports to export")
	exportCmd.Flags().Bool("all-pages", false, "Export every page of paged reports")
}
