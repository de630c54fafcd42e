// Package repository keeps per-visitor workspaces between web requests.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/db"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/util/compression"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

type WorkspaceRepository interface {
	// Create starts an empty workspace under a fresh id.
	Create(ctx context.Context) (*model.Workspace, error)
	Get(ctx context.Context, id model.WorkspaceID) (*model.Workspace, error)
	// Save inserts or replaces the workspace and stamps UpdatedAt.
	Save(ctx context.Context, ws *model.Workspace) error
	Delete(ctx context.Context, id model.WorkspaceID) error
}

var repoLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// NewWorkspaceRepository builds the store named by kind. The sqlite store
// needs an initialized database and compresses forms with the named codec.
func NewWorkspaceRepository(kind string, database db.Db, codec string) (WorkspaceRepository, error) {
	switch kind {
	case "", StoreMemory:
		return NewMemoryRepository(), nil
	case StoreSQLite:
		if database == nil {
			return nil, errors.New("sqlite workspace store needs a database")
		}
		return NewDbWorkspaceRepository(database, compression.ByName(codec)), nil
	default:
		return nil, fmt.Errorf(config.ErrUnknownWorkspaceStoreFmt, kind)
	}
}
