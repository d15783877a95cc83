package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
)

func listCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "list"}
	addListFlags(c)
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	return c
}

func TestQueryFromFlags(t *testing.T) {
	q := queryFromFlags(listCommand(t, nil), 10)
	assert.Equal(t, listview.NewPageQuery(10), q)

	q = queryFromFlags(listCommand(t, map[string]string{
		"page": "3",
		"size": "25",
		"name": "caneta",
		"sort": "unitPrice, DESC",
	}), 10)
	assert.Equal(t, 2, q.PageIndex)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, "caneta", q.FilterText)
	assert.Equal(t, "unitPrice,desc", q.Sort())
}

func TestQueryFromFlagsClampsPage(t *testing.T) {
	q := queryFromFlags(listCommand(t, map[string]string{"page": "0"}), 10)
	assert.Equal(t, 0, q.PageIndex)
}

func TestProductInputFromFlags(t *testing.T) {
	c := &cobra.Command{Use: "create"}
	addProductFlags(c)
	require.NoError(t, c.Flags().Set("name", "Caneta"))
	require.NoError(t, c.Flags().Set("price", "2.50"))
	require.NoError(t, c.Flags().Set("category", "4"))

	in, err := productInputFromFlags(c)
	require.NoError(t, err)
	assert.Equal(t, "Caneta", in.Name)
	assert.True(t, decimal.RequireFromString("2.5").Equal(in.UnitPrice))
	assert.Equal(t, "UN", in.UnitOfMeasure)
	assert.Equal(t, int64(4), in.CategoryID)

	require.NoError(t, c.Flags().Set("price", "dois"))
	_, err = productInputFromFlags(c)
	assert.Error(t, err)
}

func TestExportKinds(t *testing.T) {
	kinds, err := exportKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, reports.Kinds, kinds)

	kinds, err = exportKinds([]string{"ALL"})
	require.NoError(t, err)
	assert.Len(t, kinds, len(reports.Kinds))

	kinds, err = exportKinds([]string{"low-stock"})
	require.NoError(t, err)
	assert.Equal(t, []reports.Kind{reports.LowStock}, kinds)

	_, err = exportKinds([]string{"nope"})
	assert.Error(t, err)
}

func TestReportCell(t *testing.T) {
	assert.Equal(t, "-", reportCell(nil))
	assert.Equal(t, "R$ 1.000,00", reportCell(decimal.NewFromInt(1000)))
	assert.Equal(t, "7", reportCell(7))
	assert.Equal(t, "Caixa", reportCell("Caixa"))
}

func TestIsYes(t *testing.T) {
	for _, s := range []string{"yes", "Y", " sim\n", "s"} {
		assert.True(t, isYes(s), s)
	}
	for _, s := range []string{"", "no", "n", "nao"} {
		assert.False(t, isYes(s), s)
	}
}

func TestHandleEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	entry := "STOCKPANEL_API_TOKEN=\n"
	require.NoError(t, handleEnvFile("STOCKPANEL_API_TOKEN", entry))
	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, entry, string(data))

	require.NoError(t, os.WriteFile(".env", []byte("OTHER=1"), 0644))
	require.NoError(t, handleEnvFile("STOCKPANEL_API_TOKEN", entry))
	require.NoError(t, handleEnvFile("STOCKPANEL_API_TOKEN", entry))
	data, err = os.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "OTHER=1\n\n# Added by StockPanel\n"+entry, string(data))
}
