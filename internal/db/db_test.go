package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewSQLite(t *testing.T) {
	db := NewSQLite("")

	if db.path != MemoryPath {
		t.Errorf("Expected empty path to mean %q, got %q", MemoryPath, db.path)
	}
	if db.conn != nil {
		t.Error("Expected connection to be nil before InitDb")
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close before InitDb should be a no-op, got %v", err)
	}
}

func TestSQLiteWorkspaceTable(t *testing.T) {
	SetLogger(zerolog.Nop())

	db := NewSQLite(MemoryPath)
	if err := db.InitDb(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`INSERT INTO workspaces (id, form, updated_at) VALUES (?, ?, ?)`,
		"ws-1", []byte("{}"), time.Now().UTC())
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var lastSaved string
	if err := db.QueryRowContext(ctx, `SELECT last_saved_id FROM workspaces WHERE id = ?`, "ws-1").Scan(&lastSaved); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if lastSaved != "" {
		t.Errorf("Expected empty last_saved_id default, got %q", lastSaved)
	}
}

func TestSQLiteInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.db")

	for i := 0; i < 2; i++ {
		db := NewSQLite(path)
		if err := db.InitDb(); err != nil {
			t.Fatalf("InitDb #%d failed: %v", i+1, err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close #%d failed: %v", i+1, err)
		}
	}
}
