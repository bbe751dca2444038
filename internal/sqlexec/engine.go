package sqlexec

import (
	"context"
	"database/sql"
	"fmt"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Engine is a private in-memory SQLite database reached through exactly one
// connection. Each learner session owns its own Engine.
type Engine struct {
	db   *sql.DB
	conn *sql.Conn
}

// Open creates a fresh in-memory engine with foreign keys enforced.
func Open(ctx context.Context) (*Engine, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Engine{db: db, conn: conn}, nil
}

// Conn returns the engine's single connection.
func (e *Engine) Conn() *sql.Conn {
	return e.conn
}

// Close releases the connection and drops the in-memory database.
func (e *Engine) Close() error {
	if err := e.conn.Close(); err != nil {
		_ = e.db.Close()
		return fmt.Errorf("close connection: %w", err)
	}
	return e.db.Close()
}
