// Package sqlexec runs learner-supplied SQL against the practice engine and
// shapes the outcome for display and grading.
//
// Engine errors never escape as Go errors: they come back as a Result with
// Kind == KindFailure carrying the engine's diagnostic text verbatim.
package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Conn is the slice of *sql.Conn the executor needs. Statements run strictly
// sequentially through it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Executor classifies and runs statements on a single connection.
type Executor struct {
	conn Conn
}

// NewExecutor creates an Executor bound to conn.
func NewExecutor(conn Conn) *Executor {
	return &Executor{conn: conn}
}

// Execute runs sql and returns its Result. Blank input is rejected without
// touching the connection.
func (e *Executor) Execute(ctx context.Context, sql string) Result {
	if IsBlank(sql) {
		return rejected(EmptyQueryMessage)
	}
	if IsTabular(sql) {
		return e.query(ctx, sql)
	}
	return e.exec(ctx, sql)
}

func (e *Executor) query(ctx context.Context, q string) Result {
	rows, err := e.conn.QueryContext(ctx, q)
	if err != nil {
		return failure(err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return failure(err)
	}
	if cols == nil {
		cols = []string{}
	}

	data := [][]any{}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return failure(err)
		}
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return failure(err)
	}

	return Result{Kind: KindTabular, Columns: cols, Rows: data}
}

func (e *Executor) exec(ctx context.Context, q string) Result {
	res, err := e.conn.ExecContext(ctx, q)
	if err != nil {
		return failure(err)
	}
	if err := Commit(ctx, e.conn); err != nil {
		return failure(fmt.Errorf("commit: %w", err))
	}

	var affected int64
	if res != nil {
		if n, err := res.RowsAffected(); err == nil {
			affected = n
		}
	}
	return Result{Kind: KindNonTabular, Message: AckMessage, RowsAffected: affected}
}

// Commit ends any open transaction on conn. It is a no-op when the
// connection is in autocommit mode.
func Commit(ctx context.Context, conn Conn) error {
	return endTx(ctx, conn, "COMMIT")
}

// Rollback discards any open transaction on conn. It is a no-op when the
// connection is in autocommit mode.
func Rollback(ctx context.Context, conn Conn) error {
	return endTx(ctx, conn, "ROLLBACK")
}

func endTx(ctx context.Context, conn Conn, stmt string) error {
	_, err := conn.ExecContext(ctx, stmt)
	if err != nil && isNoTransaction(err) {
		return nil
	}
	return err
}

func isNoTransaction(err error) bool {
	return strings.Contains(err.Error(), "no transaction is active")
}
