package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// exportToSQLite writes one table per report plus a report_summary table
// holding the summary values of every report.
func exportToSQLite(ctx context.Context, data Data, filePath string) (string, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(tx)

	if _, err := tx.ExecContext(ctx, `CREATE TABLE report_summary (report TEXT, name TEXT, value TEXT)`); err != nil {
		return "", fmt.Errorf("failed to create summary table: %w", err)
	}

	for _, name := range sortedAliases(data) {
		t := data.Reports[name]
		table := tableName(name)

		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), buildColumnDefs(t.Columns))
		if _, err := tx.ExecContext(ctx, createSQL); err != nil {
			return "", fmt.Errorf("failed to create table %s: %w", table, err)
		}

		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = quoteIdent(c)
		}
		for _, row := range t.Rows {
			values := make([]any, len(t.Columns))
			for i, col := range t.Columns {
				values[i] = cellValue(row[col])
			}
			if _, err := qb.Insert(quoteIdent(table)).Columns(cols...).Values(values...).ExecContext(ctx); err != nil {
				return "", fmt.Errorf("failed to insert row into %s: %w", table, err)
			}
		}

		for key, value := range t.Summary {
			if _, err := qb.Insert("report_summary").Columns("report", "name", "value").
				Values(string(t.Kind), key, value).ExecContext(ctx); err != nil {
				return "", fmt.Errorf("failed to insert summary of %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit export: %w", err)
	}
	return filePath, nil
}

func tableName(alias string) string {
	return strings.ReplaceAll(alias, "-", "_")
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func buildColumnDefs(columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col)
	}
	return strings.Join(defs, ", ")
}

// cellValue keeps integers numeric and stores everything else as text.
func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int, int64:
		return val
	default:
		return cellString(val)
	}
}
