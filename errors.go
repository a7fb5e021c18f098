package pgmeta

import "errors"

// ErrConfiguration is returned for every configuration failure: a
// connection string that is malformed or not postgres-family, and any
// operation that requires a Ready registry invoked before Init succeeds.
// Failures from the database itself (unreachable server, DDL errors)
// are not wrapped with it and propagate unmodified from pgx.
var ErrConfiguration = errors.New("configuration error")
