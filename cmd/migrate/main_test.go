package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/debemdeboas/notice-desk/internal/repository/archive"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestMigrate(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ws-1", "100-Legal_Notice.pdf"), "%PDF-a")
	writeFile(t, filepath.Join(src, "ws-2", "200-Legal_Notice.PDF"), "%PDF-b")
	writeFile(t, filepath.Join(src, "ws-2", "notes.txt"), "skip me")

	dst, err := archive.NewFSArchive(t.TempDir())
	require.NoError(t, err)

	n, err := migrate(context.Background(), src, dst, false)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := dst.Get(context.Background(), "ws-1/100-Legal_Notice.pdf")
	require.NoError(t, err)
	require.Equal(t, "%PDF-a", string(got))

	_, err = dst.Get(context.Background(), "ws-2/notes.txt")
	require.ErrorIs(t, err, archive.ErrNotArchived)
}

func TestMigrate_DryRun(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ws-1", "100-Legal_Notice.pdf"), "%PDF-a")

	dst, err := archive.NewFSArchive(t.TempDir())
	require.NoError(t, err)

	n, err := migrate(context.Background(), src, dst, true)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = dst.Get(context.Background(), "ws-1/100-Legal_Notice.pdf")
	require.ErrorIs(t, err, archive.ErrNotArchived)
}

func TestMigrate_DisabledTarget(t *testing.T) {
	_, err := migrate(context.Background(), t.TempDir(), archive.None{}, false)
	require.Error(t, err)
}

func TestSamePath(t *testing.T) {
	require.True(t, samePath("./archive", "archive"))
	require.False(t, samePath("archive", "other"))
}
