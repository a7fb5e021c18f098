package pgmeta

import (
	"context"

	"github.com/sagarc03/pgmeta/schema"
)

// defaultRegistry backs the package-level convenience accessors for call
// sites that do not thread an explicit *Registry through.
var defaultRegistry = New()

// Default returns the process-wide registry. Prefer constructing a
// Registry with New and passing it explicitly; Default exists for call
// sites where that is impractical.
func Default() *Registry {
	return defaultRegistry
}

// Init initializes the process-wide registry. See Registry.Init.
func Init(ctx context.Context, connString string, catalog *schema.Catalog) (*Registry, error) {
	return defaultRegistry.Init(ctx, connString, catalog)
}
