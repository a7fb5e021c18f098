package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

var validIdentRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidIdent checks that a table or column name is a plain lowercase
// identifier (alphanumeric with underscores, max 63 chars).
func IsValidIdent(name string) bool {
	return validIdentRegex.MatchString(name) && len(name) <= 63
}

// Column declares one column of a table. Type and Default are raw SQL
// fragments, e.g. Type "TIMESTAMPTZ" with Default "now()".
type Column struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	PrimaryKey bool   `yaml:"primary_key"`
	Default    string `yaml:"default"`
}

// Index declares an index over one or more columns of a table. The index
// name is derived from the table and column names.
type Index struct {
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
}

// Table declares one table to create during schema initialization.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	Indexes []Index  `yaml:"indexes"`
}

// Validate checks the declaration is well formed: valid identifiers, at
// least one column, and indexes that only reference declared columns.
func (t Table) Validate() error {
	if t.Name == "" {
		return errors.New("validate table: name cannot be empty")
	}

	if !IsValidIdent(t.Name) {
		return fmt.Errorf("validate table: invalid table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", t.Name)
	}

	if len(t.Columns) == 0 {
		return fmt.Errorf("validate table %s: at least one column required", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if !IsValidIdent(c.Name) {
			return fmt.Errorf("validate table %s: invalid column name: %s", t.Name, c.Name)
		}
		if c.Type == "" {
			return fmt.Errorf("validate table %s: column %s has no type", t.Name, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("validate table %s: duplicate column: %s", t.Name, c.Name)
		}
		seen[c.Name] = true
	}

	for _, idx := range t.Indexes {
		if len(idx.Columns) == 0 {
			return fmt.Errorf("validate table %s: index with no columns", t.Name)
		}
		for _, col := range idx.Columns {
			if !seen[col] {
				return fmt.Errorf("validate table %s: index references unknown column: %s", t.Name, col)
			}
		}
	}

	return nil
}

// CreateSQL renders the CREATE TABLE IF NOT EXISTS statement for the
// declaration. Identifiers are quoted; types and defaults are spliced in
// as declared.
func (t Table) CreateSQL() (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	cols := make([]string, 0, len(t.Columns)+1)
	var pks []string

	for _, c := range t.Columns {
		def := pgx.Identifier{c.Name}.Sanitize() + " " + c.Type
		if c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)

		if c.PrimaryKey {
			pks = append(pks, pgx.Identifier{c.Name}.Sanitize())
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		pgx.Identifier{t.Name}.Sanitize(), strings.Join(cols, ",\n\t")), nil
}

// IndexSQL renders one CREATE INDEX IF NOT EXISTS statement per declared
// index.
func (t Table) IndexSQL() ([]string, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	stmts := make([]string, 0, len(t.Indexes))
	for _, idx := range t.Indexes {
		name := fmt.Sprintf("idx_%s_%s", t.Name, strings.Join(idx.Columns, "_"))

		quoted := make([]string, len(idx.Columns))
		for i, col := range idx.Columns {
			quoted[i] = pgx.Identifier{col}.Sanitize()
		}

		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}

		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique,
			pgx.Identifier{name}.Sanitize(),
			pgx.Identifier{t.Name}.Sanitize(),
			strings.Join(quoted, ", ")))
	}

	return stmts, nil
}
