package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

var Formats = []Format{FormatJSON, FormatCSV, FormatYAML, FormatSQLite}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (use json, csv, yaml or sqlite)", s)
}

// Source loads report data. *reports.Adapter satisfies it.
type Source interface {
	Load(ctx context.Context, kind reports.Kind, page, size int) (reports.Result, error)
	LoadAll(ctx context.Context, kind reports.Kind, size int) (reports.Result, error)
}

type Options struct {
	Kinds    []reports.Kind
	Format   Format
	Dir      string
	Page     int
	PageSize int
	// AllPages walks every page of paged reports instead of exporting Page.
	AllPages bool
	Logger   logrus.FieldLogger
}

// Table is one exported report.
type Table struct {
	Kind    reports.Kind       `json:"kind" yaml:"kind"`
	Label   string             `json:"label" yaml:"label"`
	Columns []string           `json:"columns" yaml:"columns"`
	Rows    []map[string]any   `json:"rows" yaml:"rows"`
	Summary map[string]string  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Page    *listview.PageInfo `json:"page,omitempty" yaml:"page,omitempty"`
}

type Data struct {
	Timestamp string           `json:"timestamp" yaml:"timestamp"`
	Version   string           `json:"version" yaml:"version"`
	Comment   string           `json:"comment" yaml:"comment"`
	Reports   map[string]Table `json:"reports" yaml:"reports"`
}

const maxParallelReports = 3

// PerformExport loads the requested reports and writes them to opts.Dir in
// the requested format. It returns the path written. Reports that fail to
// load are skipped with a warning; if all of them fail the export fails.
func PerformExport(ctx context.Context, src Source, opts Options) (string, error) {
	if len(opts.Kinds) == 0 {
		return "", fmt.Errorf("no reports selected")
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	data := Data{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Comment:   "Inventory reports export",
		Reports:   make(map[string]Table, len(opts.Kinds)),
	}

	var mu sync.Mutex
	var failures int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReports)
	for _, kind := range opts.Kinds {
		kind := kind
		g.Go(func() error {
			var (
				res reports.Result
				err error
			)
			if opts.AllPages {
				res, err = src.LoadAll(gctx, kind, opts.PageSize)
			} else {
				res, err = src.Load(gctx, kind, opts.Page, opts.PageSize)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				log.WithError(err).WithField("report", kind).Warn("skipping report")
				return nil
			}
			data.Reports[kind.Alias()] = tableOf(kind, res)
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(opts.Kinds) {
		return "", fmt.Errorf("failed to load any of the %d selected reports", failures)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	base := fmt.Sprintf("export_%s_%s", baseName(opts.Kinds), time.Now().Format("2006-01-02_15-04-05"))
	switch opts.Format {
	case FormatCSV:
		return exportToCSV(data, filepath.Join(opts.Dir, base+"_csv"))
	case FormatYAML:
		return exportToYAML(data, filepath.Join(opts.Dir, base+".yaml"))
	case FormatSQLite:
		return exportToSQLite(ctx, data, filepath.Join(opts.Dir, base+".db"))
	default:
		return exportToJSON(data, filepath.Join(opts.Dir, base+".json"))
	}
}

func baseName(kinds []reports.Kind) string {
	if len(kinds) == 1 {
		return kinds[0].Alias()
	}
	return "reports"
}

func tableOf(kind reports.Kind, res reports.Result) Table {
	cols := kind.Columns()
	t := Table{
		Kind:    kind,
		Label:   kind.Label(),
		Columns: make([]string, len(cols)),
		Rows:    make([]map[string]any, 0, len(res.Rows)),
		Page:    res.PageInfo,
	}
	for i, c := range cols {
		t.Columns[i] = c.Key
	}
	for _, row := range res.Rows {
		t.Rows = append(t.Rows, reports.Record(kind, row))
	}
	if len(res.Summary) > 0 {
		t.Summary = make(map[string]string, len(res.Summary))
		for k, v := range res.Summary {
			t.Summary[k] = v.String()
		}
	}
	return t
}

// sortedAliases gives the file writers a stable report order.
func sortedAliases(data Data) []string {
	names := make([]string, 0, len(data.Reports))
	for name := range data.Reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func exportToJSON(data Data, filePath string) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToYAML(data Data, filePath string) (string, error) {
	for name, t := range data.Reports {
		t.Rows = plainRows(t.Rows)
		data.Reports[name] = t
	}
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, yamlData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToCSV(data Data, dirPath string) (string, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create CSV directory: %w", err)
	}

	for _, name := range sortedAliases(data) {
		if err := writeCSV(filepath.Join(dirPath, name+".csv"), data.Reports[name]); err != nil {
			return "", err
		}
	}
	return dirPath, nil
}

func writeCSV(filePath string, t Table) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", t.Kind, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		values := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			values[i] = cellString(row[col])
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// plainRows replaces decimals with their string form so every encoder
// writes the exact value.
func plainRows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(row))
		for k, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				m[k] = d.String()
				continue
			}
			m[k] = v
		}
		out[i] = m
	}
	return out
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
