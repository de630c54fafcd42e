package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/render"
	"github.com/debemdeboas/notice-desk/internal/sse"
	"github.com/debemdeboas/notice-desk/internal/theme"
	"github.com/debemdeboas/notice-desk/internal/util"
)

const previewPlaceholder = "Generate a draft to see a preview here."

type indexData struct {
	*model.PageData
	ThemeIcon template.HTML

	Options   []optionView
	Form      model.Form
	Issue     fieldView
	Recipient fieldView
	Draft     draftView
	LastSaved lastSavedView
	Banner    bannerView
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)

	// The backend list arrives through the options partial once the page is
	// up, so a slow backend never holds the page.
	data := indexData{
		PageData:  model.NewPageData(r),
		Options:   optionViews(model.TemplateOptions(nil), ws.Form.Template),
		Form:      ws.Form,
		Issue:     fieldView{Value: ws.Form.Issue},
		Recipient: fieldView{Value: ws.Form.Recipient},
		Draft:     newDraftView(ws.Form.Draft, false),
		LastSaved: lastSavedView{ID: ws.LastSavedID},
		Banner:    h.bannerView(desk.Banner{}),
	}
	data.ThemeIcon = template.HTML(theme.GetThemeIcon(data.Theme))

	etagSeed := data.Theme + string(ws.ID) + ws.UpdatedAt.String()
	w.Header().Set(config.HETag, `"`+util.ShortHash([]byte(etagSeed))+`"`)
	w.Header().Set(config.HCType, config.CTypeHTML)

	if err := h.tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		h.logger.Error().Err(err).Msg("Error rendering index")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
	}
}

func (h *Handler) serveTemplateOptions(w http.ResponseWriter, r *http.Request) {
	res := h.desk.LoadTemplates(r.Context())
	h.write(w, fragment{tmplTemplateOptions, optionViews(res.Value, workspaceFrom(r).Form.Template)})
}

func (h *Handler) serveHistory(w http.ResponseWriter, r *http.Request) {
	res := h.desk.LoadHistory(r.Context())

	if res.Failed() {
		// Keep the list on screen; only the banner changes.
		b := h.bannerView(res.Banner)
		b.OOB = true
		w.Header().Set(config.HHxReswap, "none")
		h.write(w, fragment{tmplBanner, b})
		return
	}
	h.write(w, fragment{tmplHistory, newHistoryView(res)})
}

func serveDraftPreview(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("draft")

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	if text == "" {
		_, _ = w.Write([]byte("<p class=\"muted\">" + previewPlaceholder + "</p>"))
		return
	}
	_, _ = w.Write(render.RenderDraftCached(text))
}

func serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	if !config.AppConfig.Theme.AllowSwitching {
		http.Error(w, "theme switching disabled", http.StatusForbidden)
		return
	}

	newTheme := theme.Opposite(theme.GetThemeFromRequest(r))

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    newTheme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	trigger, _ := json.Marshal(map[string]any{"themeChanged": map[string]string{"value": newTheme}})
	w.Header().Set(config.HHxTrigger, string(trigger))
	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(theme.GetThemeIcon(newTheme)))
}

func serveRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HCType, "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User-agent: *\nDisallow:"))
}

// serveHealth answers ok; with ?deep=1 it also pings the notice backend.
func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, "text/plain")

	if r.URL.Query().Get("deep") == "1" && h.pinger != nil {
		if err := h.pinger.Health(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Notice backend unhealthy")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "backend unavailable: %v", err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ws := workspaceFrom(r)

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", ws.ID)
	flusher.Flush()

	client := sse.NewClient(ws.ID)
	h.clients.Add(client)
	h.logger.Debug().Str("workspace", string(ws.ID)).Msg("SSE client connected")

	defer func() {
		h.clients.Delete(client)
		h.logger.Debug().Str("workspace", string(ws.ID)).Msg("SSE client disconnected")
	}()

	for {
		select {
		case event, ok := <-client.Msg:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, event)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
