package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/debemdeboas/notice-desk/internal/model"
)

type MemoryRepository struct {
	workspaces sync.Map
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (m *MemoryRepository) Create(_ context.Context) (*model.Workspace, error) {
	ws := &model.Workspace{
		ID:        model.WorkspaceID(uuid.New().String()),
		UpdatedAt: m.now(),
	}
	m.workspaces.Store(ws.ID, *ws)
	return ws, nil
}

// Get returns a copy; changes are only kept through Save.
func (m *MemoryRepository) Get(_ context.Context, id model.WorkspaceID) (*model.Workspace, error) {
	if v, ok := m.workspaces.Load(id); ok {
		ws := v.(model.Workspace)
		return &ws, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
}

func (m *MemoryRepository) Save(_ context.Context, ws *model.Workspace) error {
	if ws.ID == "" {
		return fmt.Errorf("save workspace: empty id")
	}
	ws.UpdatedAt = m.now()
	m.workspaces.Store(ws.ID, *ws)
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id model.WorkspaceID) error {
	m.workspaces.Delete(id)
	return nil
}
