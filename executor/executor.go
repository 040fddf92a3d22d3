// Package executor runs rendered queries against a database/sql handle.
//
// It binds named parameters (including the derived ones the IRIS renderer
// produces for TOP), rewrites them to positional placeholders, discards the
// rows a QueryResult asks to skip, and reads generated identity values on
// the connection that performed the INSERT.
package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irisql/irisql"
	"go.uber.org/zap"
)

// ExecQuerier wraps the standard Exec and Query methods.
// It is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Executor executes QueryResults.
type Executor struct {
	ex  ExecQuerier
	log *zap.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for per-statement debug output.
func WithLogger(log *zap.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// New returns an Executor over ex.
func New(ex ExecQuerier, opts ...Option) *Executor {
	e := &Executor{ex: ex, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// prepare binds derived parameters and converts the statement to positional form.
func (e *Executor) prepare(result *irisql.QueryResult, args map[string]any) (string, []any, map[string]any, error) {
	if result == nil {
		return "", nil, nil, fmt.Errorf("nil query result")
	}
	bound, err := result.Bind(args)
	if err != nil {
		return "", nil, nil, err
	}
	query, argv, err := Rebind(result.SQL, bound)
	if err != nil {
		return "", nil, nil, err
	}
	return query, argv, bound, nil
}

// Query runs a SELECT and advances past the rows the result asks to skip, so
// the caller's first Next lands on the first wanted row. The caller closes
// the returned rows.
func (e *Executor) Query(ctx context.Context, result *irisql.QueryResult, args map[string]any) (*sql.Rows, error) {
	query, argv, bound, err := e.prepare(result, args)
	if err != nil {
		return nil, fmt.Errorf("executor: query: %w", err)
	}
	skip, err := result.RowsToSkip(bound)
	if err != nil {
		return nil, fmt.Errorf("executor: query: %w", err)
	}

	e.log.Debug("query",
		zap.String("sql", query),
		zap.Int("args", len(argv)),
		zap.Int("skip", skip),
	)

	rows, err := e.ex.QueryContext(ctx, query, argv...)
	if err != nil {
		return nil, fmt.Errorf("executor: query: %w", err)
	}
	for i := 0; i < skip; i++ {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return nil, fmt.Errorf("executor: query: skip rows: %w", errors.Join(err, rows.Close()))
			}
			break
		}
	}
	return rows, nil
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, result *irisql.QueryResult, args map[string]any) (sql.Result, error) {
	query, argv, _, err := e.prepare(result, args)
	if err != nil {
		return nil, fmt.Errorf("executor: exec: %w", err)
	}

	e.log.Debug("exec", zap.String("sql", query), zap.Int("args", len(argv)))

	res, err := e.ex.ExecContext(ctx, query, argv...)
	if err != nil {
		return nil, fmt.Errorf("executor: exec: %w", err)
	}
	return res, nil
}

// InsertIdentity runs an INSERT rendered with ReturningIdentity and returns
// the generated key. The identity statement reads session state, so both
// statements run on one connection: a dedicated *sql.Conn is taken when the
// executor wraps a *sql.DB.
func (e *Executor) InsertIdentity(ctx context.Context, result *irisql.QueryResult, args map[string]any) (id int64, rerr error) {
	if result != nil && result.IdentitySelect == "" {
		return 0, fmt.Errorf("executor: insert identity: query result has no identity select")
	}
	query, argv, _, err := e.prepare(result, args)
	if err != nil {
		return 0, fmt.Errorf("executor: insert identity: %w", err)
	}

	var ex ExecQuerier
	switch v := e.ex.(type) {
	case *sql.DB:
		conn, err := v.Conn(ctx)
		if err != nil {
			return 0, fmt.Errorf("executor: insert identity: acquire connection: %w", err)
		}
		defer func() { rerr = errors.Join(rerr, conn.Close()) }()
		ex = conn
	case *sql.Conn, *sql.Tx:
		ex = v
	default:
		return 0, fmt.Errorf("executor: insert identity: unsupported ExecQuerier type: %T", e.ex)
	}

	e.log.Debug("insert identity",
		zap.String("sql", query),
		zap.Int("args", len(argv)),
		zap.String("identity", result.IdentitySelect),
	)

	if _, err := ex.ExecContext(ctx, query, argv...); err != nil {
		return 0, fmt.Errorf("executor: insert identity: exec: %w", err)
	}

	rows, err := ex.QueryContext(ctx, result.IdentitySelect)
	if err != nil {
		return 0, fmt.Errorf("executor: insert identity: select: %w", err)
	}
	defer func() { rerr = errors.Join(rerr, rows.Close()) }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("executor: insert identity: select: %w", err)
		}
		return 0, fmt.Errorf("executor: insert identity: no row returned")
	}
	var v sql.NullInt64
	if err := rows.Scan(&v); err != nil {
		return 0, fmt.Errorf("executor: insert identity: scan: %w", err)
	}
	if !v.Valid {
		return 0, fmt.Errorf("executor: insert identity: no identity generated")
	}
	return v.Int64, nil
}
