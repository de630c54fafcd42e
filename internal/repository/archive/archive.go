// Package archive keeps a copy of every PDF handed out to a visitor.
package archive

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/model"
)

type Archive interface {
	// Put stores data under key and returns where it ended up.
	Put(ctx context.Context, key string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

var ErrNotArchived = errors.New("not archived")

var archiveLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	archiveLogger = l
}

const (
	KindNone = "none"
	KindFS   = "fs"
	KindS3   = "s3"
)

// Key builds <workspace>/<unix-nanos>-<filename>.
func Key(ws model.WorkspaceID, at time.Time, filename string) string {
	return path.Join(string(ws), strconv.FormatInt(at.UnixNano(), 10)+"-"+filename)
}

// New builds the archive selected in the storage config.
func New(ctx context.Context, cfg config.StorageConfig) (Archive, error) {
	switch cfg.PDFArchive {
	case "", KindNone:
		return None{}, nil
	case KindFS:
		return NewFSArchive(cfg.ArchiveDir)
	case KindS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New(config.ErrArchiveBucketRequired)
		}
		return NewS3Archive(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf(config.ErrUnknownArchiveFmt, cfg.PDFArchive)
	}
}

// None discards everything.
type None struct{}

func (None) Put(context.Context, string, []byte) (string, error) {
	return "", nil
}

func (None) Get(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotArchived, key)
}
