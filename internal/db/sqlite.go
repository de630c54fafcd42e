package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS workspaces (
    id TEXT PRIMARY KEY,
    form BLOB NOT NULL,
    last_saved_id TEXT NOT NULL DEFAULT '',
    updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS workspaces_updated_at ON workspaces (updated_at);`

type SQLite struct {
	path string
	conn *sql.DB
}

func NewSQLite(path string) *SQLite {
	if path == "" {
		path = MemoryPath
	}
	return &SQLite{path: path}
}

func (s *SQLite) InitDb() error {
	conn, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	// Every connection to :memory: is a separate database.
	if s.path == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	s.conn = conn
	dbLogger.Info().Str("path", s.path).Msg("Database initialized")
	return nil
}

func (s *SQLite) Get() *sql.DB {
	return s.conn
}

func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *SQLite) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	dbLogger.Debug().Str("query", query).Msg("Query")
	return s.conn.QueryRowContext(ctx, query, args...)
}

func (s *SQLite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	dbLogger.Debug().Str("query", query).Msg("Exec")
	return s.conn.ExecContext(ctx, query, args...)
}
