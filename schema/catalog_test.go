package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/pgmeta/schema"
)

func simpleTable(name string) schema.Table {
	return schema.Table{
		Name:    name,
		Columns: []schema.Column{{Name: "id", Type: "UUID", PrimaryKey: true}},
	}
}

func TestCatalog_Declare(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	require.NoError(t, c.Declare(simpleTable("documents")))
	require.NoError(t, c.Declare(simpleTable("sentences")))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Table("documents")
	require.True(t, ok)
	assert.Equal(t, "documents", got.Name)

	_, ok = c.Table("missing")
	assert.False(t, ok)
}

func TestCatalog_DeclareDuplicate(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	require.NoError(t, c.Declare(simpleTable("documents")))

	err := c.Declare(simpleTable("documents"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already declared")
}

func TestCatalog_DeclareInvalid(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	err := c.Declare(schema.Table{Name: "no_columns"})
	require.Error(t, err)
	assert.Zero(t, c.Len())
}

func TestCatalog_MustDeclarePanics(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	assert.Panics(t, func() {
		c.MustDeclare(schema.Table{Name: "no_columns"})
	})
}

func TestCatalog_TablesPreservesOrder(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	names := []string{"zulu", "alpha", "mike"}
	for _, name := range names {
		require.NoError(t, c.Declare(simpleTable(name)))
	}

	tables := c.Tables()
	require.Len(t, tables, 3)
	for i, name := range names {
		assert.Equal(t, name, tables[i].Name)
	}
}

func TestCatalog_DeclareAllStopsAtError(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	err := c.DeclareAll([]schema.Table{
		simpleTable("good"),
		{Name: "bad"},
		simpleTable("never_reached"),
	})

	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}
