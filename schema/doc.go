// Package schema holds the table metadata catalog used to initialize a
// database schema.
//
// Collaborator modules declare their tables against a Catalog before the
// registry is initialized; the registry then issues CREATE TABLE IF NOT
// EXISTS for every declaration. The catalog is passed to initialization
// explicitly, so the set of tables the schema is built from is always the
// set visible at the call site rather than whatever happened to be
// registered by import order.
//
// # Declaring Tables
//
//	catalog := schema.NewCatalog()
//	catalog.MustDeclare(schema.Table{
//	    Name: "documents",
//	    Columns: []schema.Column{
//	        {Name: "id", Type: "UUID", PrimaryKey: true, Default: "gen_random_uuid()"},
//	        {Name: "name", Type: "TEXT"},
//	        {Name: "stable_id", Type: "TEXT"},
//	    },
//	    Indexes: []schema.Index{
//	        {Columns: []string{"stable_id"}, Unique: true},
//	    },
//	})
//
// Declarations can also be loaded from a YAML file with LoadFile; the CLI
// uses this for schemas maintained outside Go code.
//
// Declarations are trusted input: column types and defaults are spliced
// into DDL as raw SQL. Identifiers are validated and quoted, but types
// and defaults must come from code or configuration the operator controls.
package schema
