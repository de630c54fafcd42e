package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/cache"
	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/db"
	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/logger"
	"github.com/debemdeboas/notice-desk/internal/noticeapi"
	"github.com/debemdeboas/notice-desk/internal/render"
	"github.com/debemdeboas/notice-desk/internal/repository"
	"github.com/debemdeboas/notice-desk/internal/repository/archive"
	"github.com/debemdeboas/notice-desk/internal/sse"
	"github.com/debemdeboas/notice-desk/internal/util"
	"github.com/debemdeboas/notice-desk/internal/web"
)

//go:embed static/* templates/*
var content embed.FS

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	configPath := os.Getenv(config.EnvConfigPath)
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppConfig
	config.ApplyEnv(cfg)

	l := logger.New(cfg.Logging.Level)
	setLoggers(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hashStatic(content); err != nil {
		l.Fatal().Err(err).Msg("Error hashing static files")
	}

	h, closeApp, err := newHandler(ctx, cfg, l, content)
	if err != nil {
		l.Fatal().Err(err).Msg("Error starting notice desk")
	}
	defer closeApp()

	go h.SweepCaches(ctx, time.Minute)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("Error shutting down server")
		}
	}()

	l.Info().Str("addr", srv.Addr).Str("api", cfg.API.BaseURL).Msg("Notice desk listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("Server failed")
	}
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(logger.Component(l, "config"))
	db.SetLogger(logger.Component(l, "db"))
	repository.SetLogger(logger.Component(l, "repository"))
	archive.SetLogger(logger.Component(l, "archive"))
	render.SetLogger(logger.Component(l, "render"))
}

// newHandler wires the desk, its stores and the web front end from cfg. The
// returned func releases the database.
func newHandler(ctx context.Context, cfg *config.Config, l zerolog.Logger, files fs.FS) (*web.Handler, func(), error) {
	closeApp := func() {}

	client := noticeapi.New(cfg.API.BaseURL,
		noticeapi.WithTimeout(cfg.API.Timeout),
		noticeapi.WithLogger(logger.Component(l, "noticeapi")),
	)

	d := desk.New(client,
		desk.WithLogger(logger.Component(l, "desk")),
		desk.WithHistoryLimit(cfg.UI.HistoryLimit),
		desk.WithPDFFilename(cfg.UI.PDFFilename),
		desk.WithTemplateCache(cfg.API.TemplateCacheTTL),
	)
	render.EnableDraftCache(cfg.API.TemplateCacheTTL)

	var database db.Db
	if cfg.Storage.Workspace == repository.StoreSQLite {
		sqlite := db.NewSQLite(cfg.Storage.SQLitePath)
		if err := sqlite.InitDb(); err != nil {
			return nil, closeApp, fmt.Errorf(config.ErrInitializeDatabaseFmt, err)
		}
		database = sqlite
		closeApp = func() {
			if err := sqlite.Close(); err != nil {
				l.Error().Err(err).Msg("Error closing database")
			}
		}
	}

	workspaces, err := repository.NewWorkspaceRepository(cfg.Storage.Workspace, database, cfg.Storage.Compression)
	if err != nil {
		closeApp()
		return nil, func() {}, err
	}

	pdfArchive, err := archive.New(ctx, cfg.Storage)
	if err != nil {
		closeApp()
		return nil, func() {}, err
	}

	h, err := web.New(d, files,
		web.WithWorkspaces(workspaces),
		web.WithArchive(pdfArchive),
		web.WithSSEClients(sse.NewSSEClients()),
		web.WithPinger(client),
		web.WithBannerHideAfter(cfg.UI.BannerHideAfter),
		web.WithLogger(logger.Component(l, "web")),
	)
	if err != nil {
		closeApp()
		return nil, func() {}, err
	}
	return h, closeApp, nil
}

// hashStatic records an ETag for every embedded static file.
func hashStatic(files fs.FS) error {
	static, err := fs.Sub(files, config.StaticLocalDir)
	if err != nil {
		return err
	}
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		cache.SetStaticHash(config.StaticUrlPath+path, `"`+util.ShortHash(data)+`"`)
		return nil
	})
}
