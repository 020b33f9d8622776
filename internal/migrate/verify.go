package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// verify runs the read-only introspection queries and renders each
// result as a console table. Any query failure is fatal to the run.
func (r *Runner) verify(ctx context.Context, conn *sql.Conn, v Verification) error {
	if v.Table != "" {
		if err := r.listColumns(ctx, conn, v.Table); err != nil {
			return err
		}
		if err := r.listIndexes(ctx, conn, v.Table); err != nil {
			return err
		}
	}
	if err := r.listRoutines(ctx, conn); err != nil {
		return err
	}
	if v.CountTable != "" && v.CountColumn != "" {
		if err := r.countByCategory(ctx, conn, v.CountTable, v.CountColumn); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) listColumns(ctx context.Context, conn *sql.Conn, table string) error {
	rows, err := conn.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return fmt.Errorf("list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		var name, typ, nullable, def string
		if err := rows.Scan(&name, &typ, &nullable, &def); err != nil {
			return err
		}
		data = append(data, []string{name, typ, nullable, def})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("table %s has no columns (does it exist?)", table)
	}
	r.renderTable(fmt.Sprintf("columns of %s", table),
		[]string{"column", "type", "nullable", "default"}, data)
	return nil
}

func (r *Runner) listIndexes(ctx context.Context, conn *sql.Conn, table string) error {
	rows, err := conn.QueryContext(ctx, `
		SELECT indexname, indexdef
		FROM pg_indexes
		WHERE schemaname = 'public' AND tablename = $1
		ORDER BY indexname`, table)
	if err != nil {
		return fmt.Errorf("list indexes of %s: %w", table, err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		var name, def string
		if err := rows.Scan(&name, &def); err != nil {
			return err
		}
		data = append(data, []string{name, def})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	r.renderTable(fmt.Sprintf("indexes on %s", table),
		[]string{"index", "definition"}, data)
	return nil
}

func (r *Runner) listRoutines(ctx context.Context, conn *sql.Conn) error {
	rows, err := conn.QueryContext(ctx, `
		SELECT routine_name, routine_type
		FROM information_schema.routines
		WHERE routine_schema = 'public'
		ORDER BY routine_name`)
	if err != nil {
		return fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return err
		}
		data = append(data, []string{name, typ})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	r.renderTable("stored routines", []string{"routine", "type"}, data)
	return nil
}

// countByCategory aggregates row counts grouped by a category column,
// e.g. messages by role. Identifiers come from operator flags, not
// user input, but are still quoted.
func (r *Runner) countByCategory(ctx context.Context, conn *sql.Conn, table, column string) error {
	query := fmt.Sprintf(`SELECT COALESCE(%s::text, '<null>'), COUNT(*) FROM %s GROUP BY 1 ORDER BY 1`,
		pq.QuoteIdentifier(column), pq.QuoteIdentifier(table))
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return err
		}
		data = append(data, []string{category, fmt.Sprintf("%d", count)})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	r.renderTable(fmt.Sprintf("%s by %s", table, column),
		[]string{column, "count"}, data)
	return nil
}
