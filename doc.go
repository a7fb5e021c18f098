// Package pgmeta manages the connection metadata required to bootstrap a
// PostgreSQL-backed application: parsing a connection string, constructing
// a database engine and session factory, and initializing a schema from
// declared table metadata.
//
// # Key Components
//
//   - Registry: holds connection metadata and owns the engine and session
//     factory once initialized; moves one way from Unconfigured to Ready
//   - Engine: a live pgx connection pool running statements with
//     autocommit semantics (no implicit transaction around a statement)
//   - SessionFactory / Session: independent units of work bound to an
//     engine, each session holding its own pooled connection
//   - schema.Catalog: the set of table declarations used to issue
//     create-if-not-exists DDL during initialization
//
// # Example Usage
//
//	catalog := schema.NewCatalog()
//	catalog.MustDeclare(schema.Table{
//	    Name: "documents",
//	    Columns: []schema.Column{
//	        {Name: "id", Type: "UUID", PrimaryKey: true, Default: "gen_random_uuid()"},
//	        {Name: "name", Type: "TEXT"},
//	    },
//	})
//
//	reg, err := pgmeta.New().Init(ctx, "postgres://user:pw@localhost:5432/mydb", catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	factory, _ := reg.SessionFactory()
//	session, err := factory.NewSession(ctx)
//	defer session.Close()
//
// Only postgres-family connection strings (postgres://, postgresql://) are
// accepted; anything else fails with ErrConfiguration. A second Init on a
// Ready registry is a no-op that returns the existing state.
//
// For worker processes that need their own engine, Registry.NewSessionFactory
// builds a fresh engine and factory pair from the already-validated
// connection string.
package pgmeta
