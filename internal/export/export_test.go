package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
)

type fakeSource struct {
	results  map[reports.Kind]reports.Result
	failing  map[reports.Kind]bool
	allPages atomic.Bool
}

func (f *fakeSource) Load(_ context.Context, kind reports.Kind, _, _ int) (reports.Result, error) {
	if f.failing[kind] {
		return reports.Result{Kind: kind}, errors.New("backend down")
	}
	return f.results[kind], nil
}

func (f *fakeSource) LoadAll(ctx context.Context, kind reports.Kind, size int) (reports.Result, error) {
	f.allPages.Store(true)
	return f.Load(ctx, kind, 0, size)
}

func newFakeSource() *fakeSource {
	info := listview.NewPageInfo(0, 20, 2, 1)
	return &fakeSource{
		results: map[reports.Kind]reports.Result{
			reports.Balance: {
				Kind: reports.Balance,
				Rows: []reports.Row{
					reports.BalanceRow{Name: "Caneta", StockAvailable: 100, TotalValue: decimal.RequireFromString("300.50")},
					reports.BalanceRow{Name: "Caderno", StockAvailable: 50, TotalValue: decimal.RequireFromString("699.50")},
				},
				PageInfo: &info,
				Summary:  map[string]decimal.Decimal{reports.SummaryTotalValue: decimal.NewFromInt(1000)},
			},
			reports.MostOutput: {
				Kind: reports.MostOutput,
				Rows: []reports.Row{reports.MovementRankRow{ProductName: "Caneta", TotalQuantity: 40}},
			},
		},
		failing: map[reports.Kind]bool{},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	src := newFakeSource()

	path, err := PerformExport(context.Background(), src, Options{
		Kinds:  []reports.Kind{reports.Balance},
		Format: FormatJSON,
		Dir:    dir,
	})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.False(t, src.allPages.Load())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Reports map[string]struct {
			Columns []string           `json:"columns"`
			Rows    []map[string]any   `json:"rows"`
			Summary map[string]string  `json:"summary"`
			Page    *listview.PageInfo `json:"page"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))

	balance := got.Reports["balance"]
	assert.Equal(t, []string{"name", "stockAvailable", "totalValue"}, balance.Columns)
	require.Len(t, balance.Rows, 2)
	assert.Equal(t, "Caneta", balance.Rows[0]["name"])
	assert.Equal(t, "1000", balance.Summary["totalValue"])
	require.NotNil(t, balance.Page)
	assert.Equal(t, 1, balance.Page.TotalPages)
}

func TestExportYAMLAllPages(t *testing.T) {
	dir := t.TempDir()
	src := newFakeSource()

	path, err := PerformExport(context.Background(), src, Options{
		Kinds:    []reports.Kind{reports.Balance, reports.MostOutput},
		Format:   FormatYAML,
		Dir:      dir,
		AllPages: true,
	})
	require.NoError(t, err)
	assert.True(t, src.allPages.Load())
	assert.Contains(t, filepath.Base(path), "export_reports_")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Data
	require.NoError(t, yaml.Unmarshal(raw, &got))
	require.Contains(t, got.Reports, "most-output")
	assert.Equal(t, "300.5", got.Reports["balance"].Rows[0]["totalValue"])
	assert.Equal(t, 40, got.Reports["most-output"].Rows[0]["totalQuantity"])
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := PerformExport(context.Background(), newFakeSource(), Options{
		Kinds:  []reports.Kind{reports.Balance, reports.MostOutput},
		Format: FormatCSV,
		Dir:    dir,
	})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(path, "balance.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "stockAvailable", "totalValue"},
		{"Caneta", "100", "300.5"},
		{"Caderno", "50", "699.5"},
	}, records)
}

func TestExportSQLite(t *testing.T) {
	dir := t.TempDir()
	path, err := PerformExport(context.Background(), newFakeSource(), Options{
		Kinds:  []reports.Kind{reports.Balance, reports.MostOutput},
		Format: FormatSQLite,
		Dir:    dir,
	})
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "balance"`).Scan(&count))
	assert.Equal(t, 2, count)

	var top string
	require.NoError(t, db.QueryRow(`SELECT "productName" FROM "most_output"`).Scan(&top))
	assert.Equal(t, "Caneta", top)

	var total string
	require.NoError(t, db.QueryRow(`SELECT value FROM report_summary WHERE report = 'BALANCE' AND name = 'totalValue'`).Scan(&total))
	assert.Equal(t, "1000", total)
}

func TestExportSkipsFailingReports(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	src := newFakeSource()
	src.failing[reports.MostOutput] = true

	_, err := PerformExport(context.Background(), src, Options{
		Kinds:  []reports.Kind{reports.Balance, reports.MostOutput},
		Dir:    t.TempDir(),
		Logger: log,
	})
	require.NoError(t, err)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "skipping report", hook.LastEntry().Message)

	src.failing[reports.Balance] = true
	_, err = PerformExport(context.Background(), src, Options{
		Kinds:  []reports.Kind{reports.Balance, reports.MostOutput},
		Dir:    t.TempDir(),
		Logger: log,
	})
	assert.Error(t, err)
}
