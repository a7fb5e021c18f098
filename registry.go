package pgmeta

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sagarc03/pgmeta/schema"
)

// State is the registry lifecycle state. The transition is one-way:
// a registry moves from Unconfigured to Ready at most once and never
// back.
type State int

const (
	// StateUnconfigured means no connection info is held and no engine
	// exists. Every ready-gated operation fails with ErrConfiguration.
	StateUnconfigured State = iota
	// StateReady means the connection string has been validated, the
	// engine is live, the session factory exists, and the schema has
	// been created.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Registry holds the connection metadata for a postgres-backed
// application and owns the engine and session factory once Init
// succeeds. Construct one with New and pass it to every collaborator
// that needs a session or engine; for call sites that want a shared
// instance, the package-level Default registry is available.
//
// All methods are safe for concurrent use. Once Ready, the connection
// string, parsed fields, engine, and session factory are immutable for
// the life of the registry.
type Registry struct {
	mu         sync.Mutex
	state      State
	connString string
	info       ConnInfo
	engine     *Engine
	sessions   *SessionFactory
	catalog    *schema.Catalog
}

// New returns a registry in the Unconfigured state.
func New() *Registry {
	return &Registry{state: StateUnconfigured}
}

// Init validates the connection string, connects the engine, builds the
// session factory, and creates every table declared in catalog, then
// transitions the registry to Ready. It returns the registry itself so
// call sites can chain into SessionFactory or Engine.
//
// Calling Init on a Ready registry is a no-op returning the existing
// state; the supplied connection string is ignored even if it differs
// from the original. A nil catalog is treated as empty.
//
// A non-postgres or malformed connection string fails with
// ErrConfiguration. Connection and DDL failures propagate from pgx; in
// either case the registry stays Unconfigured and Init may be retried.
func (r *Registry) Init(ctx context.Context, connString string, catalog *schema.Catalog) (*Registry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateReady {
		if connString != r.connString {
			slog.Warn("registry already initialized, ignoring new connection string",
				"database", r.info.Database)
		}
		return r, nil
	}

	info, err := ParseConnString(connString)
	if err != nil {
		return nil, err
	}

	if catalog == nil {
		catalog = schema.NewCatalog()
	}

	slog.Info("connecting to database",
		"user", info.User, "database", info.Database, "port", info.Port)

	engine, err := newEngine(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := engine.Ping(ctx); err != nil {
		engine.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("initializing the storage schema", "tables", catalog.Len())

	if err := catalog.CreateAll(ctx, engine); err != nil {
		engine.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	r.connString = connString
	r.info = info
	r.engine = engine
	r.sessions = NewSessionFactory(engine)
	r.catalog = catalog
	r.state = StateReady

	return r, nil
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Ready reports whether Init has succeeded.
func (r *Registry) Ready() bool {
	return r.State() == StateReady
}

// ConnInfo returns the parsed connection components. The zero ConnInfo
// is returned while Unconfigured.
func (r *Registry) ConnInfo() ConnInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info
}

// ConnString returns the raw connection string accepted by Init, or ""
// while Unconfigured.
func (r *Registry) ConnString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connString
}

// Engine returns the live engine. Fails with ErrConfiguration while
// Unconfigured.
func (r *Registry) Engine() (*Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return nil, fmt.Errorf("%w: registry has not been initialized with a postgres connection string", ErrConfiguration)
	}
	return r.engine, nil
}

// SessionFactory returns the factory created during Init, bound to the
// registry's engine. Fails with ErrConfiguration while Unconfigured.
func (r *Registry) SessionFactory() (*SessionFactory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return nil, fmt.Errorf("%w: registry has not been initialized with a postgres connection string", ErrConfiguration)
	}
	return r.sessions, nil
}

// Catalog returns the schema catalog the registry was initialized with,
// so collaborators can inspect the declared tables. Fails with
// ErrConfiguration while Unconfigured.
func (r *Registry) Catalog() (*schema.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return nil, fmt.Errorf("%w: registry has not been initialized with a postgres connection string", ErrConfiguration)
	}
	return r.catalog, nil
}

// NewSessionFactory builds a fresh engine and session factory pair from
// the already-validated connection string. This exists for worker
// processes that need an engine independent of the registry's own; the
// caller owns the returned factory's engine and should close it when
// done. Fails with ErrConfiguration while Unconfigured.
func (r *Registry) NewSessionFactory(ctx context.Context) (*SessionFactory, error) {
	r.mu.Lock()
	connString := r.connString
	ready := r.state == StateReady
	r.mu.Unlock()

	if !ready {
		return nil, fmt.Errorf("%w: registry has not been initialized with a postgres connection string", ErrConfiguration)
	}

	engine, err := newEngine(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := engine.Ping(ctx); err != nil {
		engine.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewSessionFactory(engine), nil
}
