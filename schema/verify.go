package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of a database handle Verify needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Verify checks that every declared table exists in the public schema
// and carries every declared column. Column types are not compared,
// since declarations use raw SQL types that the server normalizes (e.g.
// SERIAL becomes integer).
func (c *Catalog) Verify(ctx context.Context, db Querier) error {
	for _, t := range c.Tables() {
		if err := verifyTable(ctx, db, t); err != nil {
			return fmt.Errorf("verify schema %s: %w", t.Name, err)
		}
	}
	return nil
}

func verifyTable(ctx context.Context, db Querier, t Table) error {
	exists, err := tableExists(ctx, db, t.Name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("table %s does not exist", t.Name)
	}

	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = $1
	`

	rows, err := db.Query(ctx, query, t.Name)
	if err != nil {
		return fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	actual := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		actual[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	var missing []string
	for _, col := range t.Columns {
		if !actual[col.Name] {
			missing = append(missing, col.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("table %s missing columns: %s", t.Name, strings.Join(missing, ", "))
	}

	return nil
}

func tableExists(ctx context.Context, db Querier, tableName string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`
	if err := db.QueryRow(ctx, query, tableName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check table exists: %w", err)
	}
	return exists, nil
}
