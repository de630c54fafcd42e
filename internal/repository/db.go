package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/debemdeboas/notice-desk/internal/db"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/util/compression"
)

// DbWorkspaceRepository stores each form as compressed JSON.
type DbWorkspaceRepository struct {
	db         db.Db
	compressor compression.Compressor
	now        func() time.Time
}

// NewDbWorkspaceRepository stores forms with c, or zstd when c is nil.
func NewDbWorkspaceRepository(database db.Db, c compression.Compressor) *DbWorkspaceRepository {
	if c == nil {
		c = compression.ZstdCompressor{}
	}
	return &DbWorkspaceRepository{
		db:         database,
		compressor: c,
		now:        time.Now,
	}
}

func (r *DbWorkspaceRepository) Create(ctx context.Context) (*model.Workspace, error) {
	ws := &model.Workspace{ID: model.WorkspaceID(uuid.New().String())}
	if err := r.Save(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *DbWorkspaceRepository) Get(ctx context.Context, id model.WorkspaceID) (*model.Workspace, error) {
	var (
		compressed []byte
		lastSaved  string
		updatedAt  time.Time
	)
	row := r.db.QueryRowContext(ctx,
		`SELECT form, last_saved_id, updated_at FROM workspaces WHERE id = ?`, string(id))
	if err := row.Scan(&compressed, &lastSaved, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
		}
		return nil, fmt.Errorf("error scanning workspace %s: %w", id, err)
	}

	raw, err := r.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing workspace %s: %w", id, err)
	}

	ws := &model.Workspace{ID: id, LastSavedID: model.NoticeID(lastSaved), UpdatedAt: updatedAt}
	if err := json.Unmarshal(raw, &ws.Form); err != nil {
		return nil, fmt.Errorf("error decoding workspace %s: %w", id, err)
	}
	return ws, nil
}

func (r *DbWorkspaceRepository) Save(ctx context.Context, ws *model.Workspace) error {
	if ws.ID == "" {
		return fmt.Errorf("save workspace: empty id")
	}

	raw, err := json.Marshal(ws.Form)
	if err != nil {
		return fmt.Errorf("error encoding workspace %s: %w", ws.ID, err)
	}
	compressed, err := r.compressor.Compress(raw)
	if err != nil {
		return fmt.Errorf("error compressing workspace %s: %w", ws.ID, err)
	}

	ws.UpdatedAt = r.now().UTC()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO workspaces (id, form, last_saved_id, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    form = excluded.form,
    last_saved_id = excluded.last_saved_id,
    updated_at = excluded.updated_at`,
		string(ws.ID), compressed, string(ws.LastSavedID), ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving workspace %s: %w", ws.ID, err)
	}

	repoLogger.Debug().
		Str("workspace", string(ws.ID)).
		Int("raw_bytes", len(raw)).
		Int("stored_bytes", len(compressed)).
		Msg("Workspace saved")
	return nil
}

func (r *DbWorkspaceRepository) Delete(ctx context.Context, id model.WorkspaceID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("error deleting workspace %s: %w", id, err)
	}
	return nil
}
