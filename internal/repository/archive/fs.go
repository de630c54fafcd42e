package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type FSArchive struct {
	root string
}

func NewFSArchive(root string) (*FSArchive, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &FSArchive{root: root}, nil
}

func (a *FSArchive) path(key string) (string, error) {
	p := filepath.Join(a.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(a.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid archive key %q", key)
	}
	return p, nil
}

func (a *FSArchive) Put(_ context.Context, key string, data []byte) (string, error) {
	p, err := a.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	archiveLogger.Debug().Str("path", p).Int("bytes", len(data)).Msg("PDF archived")
	return p, nil
}

func (a *FSArchive) Get(_ context.Context, key string) ([]byte, error) {
	p, err := a.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotArchived, key)
	}
	return data, err
}
