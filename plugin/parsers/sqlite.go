package parsers

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/agentic-research/nest/plugin"
)

// SQLite parses *.sqlite database files into
// {table: {column: [values]}}. The driver needs a file path, so the
// stream is spooled to a temporary file first.
type SQLite struct{}

func (p *SQLite) Name() string        { return "sqlite" }
func (p *SQLite) FilePattern() string { return "*.sqlite" }

func (p *SQLite) Parse(r io.Reader, _ plugin.Options) (any, error) {
	tmp, err := os.CreateTemp("", "nest-sqlite-*.db")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", tmp.Name()+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(tables))
	for _, table := range tables {
		columns, err := readColumns(db, table)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
		out[table] = columns
	}
	return out, nil
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// quoteIdent quotes a SQL identifier, doubling embedded quote characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func readColumns(db *sql.DB, table string) (map[string]any, error) {
	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columns := make([][]any, len(names))
	for rows.Next() {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, cell := range cells {
			if b, ok := cell.([]byte); ok {
				cell = string(b)
			}
			columns[i] = append(columns[i], cell)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(names))
	for i, name := range names {
		vals := columns[i]
		if vals == nil {
			vals = []any{}
		}
		out[name] = vals
	}
	return out, nil
}
