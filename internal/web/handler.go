// Package web is the htmx front end. Each handler runs one desk operation and
// answers with HTML fragments for the triggering element.
package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/cache"
	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/render"
	"github.com/debemdeboas/notice-desk/internal/repository"
	"github.com/debemdeboas/notice-desk/internal/repository/archive"
	"github.com/debemdeboas/notice-desk/internal/routes"
	"github.com/debemdeboas/notice-desk/internal/sse"
)

const DefaultDownloadTTL = time.Minute

// Pinger reports whether the remote backend is up.
type Pinger interface {
	Health(ctx context.Context) error
}

type Handler struct {
	desk       *desk.Desk
	workspaces repository.WorkspaceRepository
	archive    archive.Archive
	clients    *sse.SSEClients
	pinger     Pinger

	downloads *cache.Expiring[string, desk.PDF]

	files  fs.FS
	static fs.FS
	tmpl   *template.Template

	bannerHideAfter time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

type Option func(*Handler)

func WithWorkspaces(repo repository.WorkspaceRepository) Option {
	return func(h *Handler) {
		h.workspaces = repo
	}
}

func WithArchive(a archive.Archive) Option {
	return func(h *Handler) {
		h.archive = a
	}
}

func WithSSEClients(c *sse.SSEClients) Option {
	return func(h *Handler) {
		h.clients = c
	}
}

func WithPinger(p Pinger) Option {
	return func(h *Handler) {
		h.pinger = p
	}
}

func WithDownloadTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.downloads = cache.NewExpiring[string, desk.PDF](ttl)
	}
}

func WithBannerHideAfter(d time.Duration) Option {
	return func(h *Handler) {
		h.bannerHideAfter = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// New parses the page templates from files, which must hold the templates
// and static directories.
func New(d *desk.Desk, files fs.FS, opts ...Option) (*Handler, error) {
	h := &Handler{
		desk:            d,
		workspaces:      repository.NewMemoryRepository(),
		archive:         archive.None{},
		clients:         sse.NewSSEClients(),
		downloads:       cache.NewExpiring[string, desk.PDF](DefaultDownloadTTL),
		files:           files,
		bannerHideAfter: 5 * time.Second,
		logger:          zerolog.Nop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	static, err := fs.Sub(files, config.StaticLocalDir)
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	h.static = static

	h.tmpl, err = template.New(config.TemplateLayout).ParseFS(files,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplateIndex,
		config.TemplatesLocalDir+"/"+config.TemplatePartials,
	)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return h, nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(cacheIt)

	r.Get(routes.RobotsPath, serveRobots)
	r.Get(routes.HealthPath, h.serveHealth)
	r.Handle(config.StaticUrlPath+"*", http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(h.static))))

	r.Group(func(r chi.Router) {
		r.Use(secureHeaders)
		r.Use(h.withWorkspace)

		r.Get(routes.RootPath, h.serveIndex)
		r.Post(routes.ThemeToggle, serveThemeToggle)
		r.Get(routes.SSEPath, h.serveEvents)

		r.Get(routes.PartialsTemplates, h.serveTemplateOptions)
		r.Get(routes.PartialsHistory, h.serveHistory)
		r.Post(routes.PartialsDraftPreview, serveDraftPreview)

		r.Post(routes.ActionTemplate, h.actionTemplate)
		r.Post(routes.ActionGenerate, h.actionGenerate)
		r.Post(routes.ActionSave, h.actionSave)
		r.Post(routes.ActionNotice, h.actionNotice)
		r.Post(routes.ActionPDF, h.actionPDF)
		r.Post(routes.ActionEmail, h.actionEmail)

		r.Get(routes.Downloads, h.serveDownload)
	})

	return r
}

// SweepCaches drops unclaimed PDFs and expired draft previews every interval
// until ctx ends.
func (h *Handler) SweepCaches(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.downloads.Sweep()
			render.SweepDraftCache()
		case <-ctx.Done():
			return
		}
	}
}
