package schema

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of a database handle CreateAll needs. Both the
// engine and a raw pgx pool satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Catalog is an order-preserving collection of table declarations. It is
// safe for concurrent use so collaborator modules can declare tables from
// their own initialization paths.
type Catalog struct {
	mu     sync.RWMutex
	order  []string
	tables map[string]Table
}

func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]Table)}
}

// Declare validates a table declaration and adds it to the catalog.
// Declaring the same table name twice is an error.
func (c *Catalog) Declare(t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[t.Name]; exists {
		return fmt.Errorf("declare table: %s already declared", t.Name)
	}

	c.tables[t.Name] = t
	c.order = append(c.order, t.Name)
	return nil
}

// MustDeclare is Declare for package-initialization call sites, where a
// bad declaration is a programming error.
func (c *Catalog) MustDeclare(t Table) {
	if err := c.Declare(t); err != nil {
		panic(err)
	}
}

// DeclareAll declares every table in ts, stopping at the first error.
func (c *Catalog) DeclareAll(ts []Table) error {
	for _, t := range ts {
		if err := c.Declare(t); err != nil {
			return err
		}
	}
	return nil
}

// Tables returns the declarations in declaration order.
func (c *Catalog) Tables() []Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Table, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tables[name])
	}
	return out
}

// Table returns the declaration for name, if present.
func (c *Catalog) Table(name string) (Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[name]
	return t, ok
}

// Len returns the number of declared tables.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// CreateAll issues create-if-not-exists DDL for every declared table and
// index, in declaration order. Existing tables are left untouched; this
// is not a migration mechanism. DDL errors propagate unmodified.
func (c *Catalog) CreateAll(ctx context.Context, db Execer) error {
	for _, t := range c.Tables() {
		sql, err := t.CreateSQL()
		if err != nil {
			return err
		}

		if _, err := db.Exec(ctx, sql); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}

		idxStmts, err := t.IndexSQL()
		if err != nil {
			return err
		}
		for _, stmt := range idxStmts {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("create index on %s: %w", t.Name, err)
			}
		}
	}

	return nil
}
