package pgmeta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/pgmeta"
	"github.com/sagarc03/pgmeta/schema"
)

func testCatalog(t *testing.T) (*schema.Catalog, string) {
	t.Helper()

	tableName := getRandomTableName(t)
	catalog := schema.NewCatalog()
	catalog.MustDeclare(schema.Table{
		Name: tableName,
		Columns: []schema.Column{
			{Name: "id", Type: "UUID", PrimaryKey: true, Default: "gen_random_uuid()"},
			{Name: "name", Type: "TEXT"},
			{Name: "created_at", Type: "TIMESTAMPTZ", Default: "now()"},
		},
		Indexes: []schema.Index{
			{Columns: []string{"name"}, Unique: true},
		},
	})
	return catalog, tableName
}

func initTestRegistry(t *testing.T) (*pgmeta.Registry, *schema.Catalog, string) {
	t.Helper()
	ctx := context.Background()

	catalog, tableName := testCatalog(t)

	reg, err := pgmeta.New().Init(ctx, getTestConnString(t), catalog)
	require.NoError(t, err)

	t.Cleanup(func() {
		if engine, err := reg.Engine(); err == nil {
			engine.Close()
		}
	})

	return reg, catalog, tableName
}

func TestRegistry_Init(t *testing.T) {
	ctx := context.Background()

	reg, catalog, _ := initTestRegistry(t)

	assert.Equal(t, pgmeta.StateReady, reg.State())
	assert.True(t, reg.Ready())

	info := reg.ConnInfo()
	assert.Equal(t, "testdb", info.Database)
	assert.Equal(t, "testuser", info.User)
	assert.Equal(t, "testpass", info.Password)
	assert.NotZero(t, info.Port)
	assert.True(t, info.IsPostgres())

	engine, err := reg.Engine()
	require.NoError(t, err)
	assert.NoError(t, engine.Ping(ctx))

	got, err := reg.Catalog()
	require.NoError(t, err)
	assert.Same(t, catalog, got)
}

func TestRegistry_InitCreatesSchema(t *testing.T) {
	ctx := context.Background()

	reg, catalog, tableName := initTestRegistry(t)

	engine, err := reg.Engine()
	require.NoError(t, err)

	// Declared tables exist with all declared columns.
	require.NoError(t, catalog.Verify(ctx, engine))

	// Create-if-not-exists: a second pass over an existing schema is a
	// no-op, not an error.
	require.NoError(t, catalog.CreateAll(ctx, engine))

	var count int
	err = engine.QueryRow(ctx, "SELECT count(*) FROM "+tableName).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegistry_InitIdempotent(t *testing.T) {
	ctx := context.Background()

	reg, _, _ := initTestRegistry(t)
	first := reg.ConnInfo()

	// A second Init with a different, valid postgres string is a no-op.
	same, err := reg.Init(ctx, "postgres://other:pw@elsewhere:9999/otherdb", nil)
	require.NoError(t, err)
	assert.Same(t, reg, same)

	assert.Equal(t, first, reg.ConnInfo())
	assert.Equal(t, getTestConnString(t), reg.ConnString())
	assert.Equal(t, "testdb", reg.ConnInfo().Database)
}

func TestRegistry_SessionFactory(t *testing.T) {
	ctx := context.Background()

	reg, _, tableName := initTestRegistry(t)

	factory, err := reg.SessionFactory()
	require.NoError(t, err)

	engine, err := reg.Engine()
	require.NoError(t, err)
	assert.Same(t, engine, factory.Engine())
	assert.Equal(t, pgmeta.IsolationAutocommit, factory.Engine().Isolation())

	session, err := factory.NewSession(ctx)
	require.NoError(t, err)
	defer session.Close()

	assert.NotEqual(t, session.ID().String(), "")

	_, err = session.Exec(ctx, "INSERT INTO "+tableName+" (name) VALUES ($1)", "first")
	require.NoError(t, err)

	// The insert committed immediately: a second, independent session
	// sees it without the first session ending a transaction.
	other, err := factory.NewSession(ctx)
	require.NoError(t, err)
	defer other.Close()

	var count int
	err = other.QueryRow(ctx, "SELECT count(*) FROM "+tableName).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistry_SessionExplicitTx(t *testing.T) {
	ctx := context.Background()

	reg, _, tableName := initTestRegistry(t)

	factory, err := reg.SessionFactory()
	require.NoError(t, err)

	session, err := factory.NewSession(ctx)
	require.NoError(t, err)
	defer session.Close()

	tx, err := session.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, "INSERT INTO "+tableName+" (name) VALUES ($1)", "rolled-back")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	var count int
	err = session.QueryRow(ctx, "SELECT count(*) FROM "+tableName).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegistry_NewSessionFactory(t *testing.T) {
	ctx := context.Background()

	reg, _, tableName := initTestRegistry(t)

	factory, err := reg.NewSessionFactory(ctx)
	require.NoError(t, err)
	defer factory.Engine().Close()

	// Fresh engine, not the registry's own.
	engine, err := reg.Engine()
	require.NoError(t, err)
	assert.NotSame(t, engine, factory.Engine())
	assert.Equal(t, pgmeta.IsolationAutocommit, factory.Engine().Isolation())

	session, err := factory.NewSession(ctx)
	require.NoError(t, err)
	defer session.Close()

	var one int
	err = session.QueryRow(ctx, "SELECT 1").Scan(&one)
	require.NoError(t, err)
	assert.Equal(t, 1, one)

	// The fresh engine reaches the same database and tables.
	var count int
	err = session.QueryRow(ctx, "SELECT count(*) FROM "+tableName).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegistry_InitUnreachableServer(t *testing.T) {
	ctx := context.Background()

	reg := pgmeta.New()
	_, err := reg.Init(ctx, "postgres://user:pw@localhost:1/nope?connect_timeout=1", nil)

	require.Error(t, err)
	// Network failures are not configuration errors.
	assert.NotErrorIs(t, err, pgmeta.ErrConfiguration)
	assert.False(t, reg.Ready())
}
