package pgmeta

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IsolationLevel describes how an engine wraps statements in transactions.
type IsolationLevel string

// IsolationAutocommit runs each statement on its own, with no implicit
// transaction held open across calls. A query from one session never
// blocks another session's access to the same tables, which matters when
// the engine is shared across worker processes.
const IsolationAutocommit IsolationLevel = "autocommit"

// Engine is a live handle to the database server, backed by a pgx
// connection pool. Statements issued through the engine or through
// sessions bound to it execute with autocommit semantics; callers that
// want a transaction must open one explicitly via Session.Begin.
type Engine struct {
	pool      *pgxpool.Pool
	isolation IsolationLevel
}

// newEngine builds an engine from an already-validated connection string.
// The pool is created lazily; the caller pings it to establish liveness.
func newEngine(ctx context.Context, connString string) (*Engine, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%w: parse connection string: %v", ErrConfiguration, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return &Engine{pool: pool, isolation: IsolationAutocommit}, nil
}

// Isolation returns the isolation mode the engine was configured with.
func (e *Engine) Isolation() IsolationLevel {
	return e.isolation
}

// Pool exposes the underlying pgx pool for callers that need it directly.
func (e *Engine) Pool() *pgxpool.Pool {
	return e.pool
}

func (e *Engine) Ping(ctx context.Context) error {
	return e.pool.Ping(ctx)
}

func (e *Engine) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return e.pool.Exec(ctx, sql, args...)
}

func (e *Engine) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return e.pool.Query(ctx, sql, args...)
}

func (e *Engine) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return e.pool.QueryRow(ctx, sql, args...)
}

// Close closes the pool and every connection it holds. Sessions produced
// from this engine become unusable.
func (e *Engine) Close() {
	e.pool.Close()
}

// SessionFactory produces sessions bound to a single engine. A factory is
// safe for concurrent use; the sessions it produces are not.
type SessionFactory struct {
	engine *Engine
}

// NewSessionFactory returns a factory producing sessions bound to engine.
func NewSessionFactory(engine *Engine) *SessionFactory {
	return &SessionFactory{engine: engine}
}

// Engine returns the engine this factory binds sessions to.
func (f *SessionFactory) Engine() *Engine {
	return f.engine
}

// NewSession acquires a dedicated connection from the engine's pool and
// returns it as an independent unit of work. The caller owns the session
// and must Close it to return the connection to the pool.
func (f *SessionFactory) NewSession(ctx context.Context) (*Session, error) {
	conn, err := f.engine.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session connection: %w", err)
	}

	return &Session{id: uuid.New(), conn: conn, engine: f.engine}, nil
}

// Session is a unit of work against the shared engine, holding one
// connection for its lifetime. Statements run with autocommit semantics
// unless the caller opens an explicit transaction with Begin.
type Session struct {
	id     uuid.UUID
	conn   *pgxpool.Conn
	engine *Engine
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Engine returns the engine the session is bound to.
func (s *Session) Engine() *Engine {
	return s.engine
}

func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.conn.Exec(ctx, sql, args...)
}

func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.conn.Query(ctx, sql, args...)
}

func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.conn.QueryRow(ctx, sql, args...)
}

// Begin opens an explicit transaction on the session's connection. This
// is the only way statements in this package run inside a transaction.
func (s *Session) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.conn.Begin(ctx)
}

// Close releases the session's connection back to the pool.
func (s *Session) Close() {
	s.conn.Release()
}
