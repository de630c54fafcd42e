// Command migrate copies PDFs kept by a filesystem archive into the archive
// named in the config, typically when moving a desk from local disk to S3.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/logger"
	"github.com/debemdeboas/notice-desk/internal/repository/archive"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultConfigPath, "Path to the desk config")
	from := flag.String("from", "", "Directory of a filesystem archive (defaults to storage.archive_dir)")
	dryRun := flag.Bool("dry-run", false, "List what would be copied")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppConfig
	config.ApplyEnv(cfg)

	l := logger.New(cfg.Logging.Level)
	archive.SetLogger(logger.Component(l, "archive"))

	src := *from
	if src == "" {
		src = cfg.Storage.ArchiveDir
	}
	if cfg.Storage.PDFArchive == archive.KindFS && samePath(src, cfg.Storage.ArchiveDir) {
		log.Fatal("Source and target archive are the same directory")
	}

	ctx := context.Background()
	dst, err := archive.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Error opening target archive: %v", err)
	}

	n, err := migrate(ctx, src, dst, *dryRun)
	if err != nil {
		log.Fatalf("Migration stopped after %d files: %v", n, err)
	}
	log.Printf("Migrated %d files from %s", n, src)
}

// migrate copies every PDF under dir into dst, keyed by its slash-separated
// path relative to dir. It returns the number of files copied.
func migrate(ctx context.Context, dir string, dst archive.Archive, dryRun bool) (int, error) {
	if _, ok := dst.(archive.None); ok && !dryRun {
		return 0, errors.New("target archive is disabled")
	}

	n := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".pdf") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		if dryRun {
			log.Printf("Would copy %s", key)
			n++
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		loc, err := dst.Put(ctx, key, data)
		if err != nil {
			return err
		}
		log.Printf("Copied %s to %s", key, loc)
		n++
		return nil
	})
	return n, err
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
