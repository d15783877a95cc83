package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

var entityLabels = map[types.Entity]string{
	types.EntityProducts:   "produtos",
	types.EntityCategories: "categorias",
	types.EntityMovements:  "movimentações",
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number (1-based)")
	cmd.Flags().Int("size", 0, "Page size (default list.page_size)")
	cmd.Flags().String("name", "", "Filter by name")
	cmd.Flags().String("sort", "", "Sort as key[,asc|desc]")
	cmd.Flags().Bool("json", false, "Print the page as JSON")
}

// queryFromFlags builds the page query from the list flags.
func queryFromFlags(cmd *cobra.Command, defaultSize int) listview.PageQuery {
	size, _ := cmd.Flags().GetInt("size")
	if size <= 0 {
		size = defaultSize
	}
	q := listview.NewPageQuery(size)

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		q = q.WithFilter(name)
	}
	if raw, _ := cmd.Flags().GetString("sort"); raw != "" {
		key, dir := parseSortFlag(raw)
		q = q.WithSort(key, dir)
	}
	page, _ := cmd.Flags().GetInt("page")
	return q.WithPage(page - 1)
}

func parseSortFlag(raw string) (string, listview.SortDirection) {
	key, dir, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(key), listview.ParseSortDirection(dir)
}

func runList[T any](cmd *cobra.Command, entity types.Entity, cols []column[T]) error {
	env, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	q := queryFromFlags(cmd, env.cfg.List.PageSize)
	page, err := listview.ForEntity[T](env.client, entity).Fetch(ctx, q)
	if err != nil {
		return reportFailure(err, "Erro ao carregar "+entityLabels[entity])
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	printTable(os.Stdout, cols, page.Items)
	fmt.Println()
	color.New(color.FgHiBlack).Println(pagerFooter(page.PageInfo))
	return nil
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func runDelete(cmd *cobra.Command, entity types.Entity, rawID, warning string) error {
	id, err := parseIDArg(rawID)
	if err != nil {
		return err
	}

	env, err := loadRuntime()
	if err != nil {
		return err
	}

	if warning != "" {
		color.Yellow("⚠️  %s", warning)
	}
	ok, err := confirm(cmd, fmt.Sprintf("Excluir %s #%d?", strings.TrimSuffix(entityLabels[entity], "s"), id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("❌ Exclusão cancelada")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := env.client.DeleteEntity(ctx, entity, id); err != nil {
		return reportFailure(err, "Erro ao deletar")
	}
	color.Green("✅ Registro #%d deletado", id)
	return nil
}

func printSaved(action string, id int64) {
	color.Green("✅ Registro #%d %s", id, action)
}
