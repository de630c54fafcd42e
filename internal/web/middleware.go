package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/debemdeboas/notice-desk/internal/cache"
	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/repository"
)

type ctxKey int

const workspaceKey ctxKey = iota

func cacheIt(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
			if r.Header.Get("If-None-Match") == hash {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "same-origin")

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Bool("htmx", r.Header.Get(config.HHxRequest) != "").
			Msg("Request")
	})
}

// withWorkspace attaches the caller's workspace, creating one and setting the
// cookie when the caller has none or an unknown id.
func (h *Handler) withWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if cookie, err := r.Cookie(config.CookieWorkspace); err == nil && cookie.Value != "" {
			ws, err := h.workspaces.Get(ctx, model.WorkspaceID(cookie.Value))
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, workspaceKey, ws)))
				return
			}
			if !errors.Is(err, repository.ErrWorkspaceNotFound) {
				h.logger.Error().Err(err).Str("workspace", cookie.Value).Msg("Error loading workspace")
			}
		}

		ws, err := h.workspaces.Create(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("Error creating workspace")
			http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     config.CookieWorkspace,
			Value:    string(ws.ID),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, workspaceKey, ws)))
	})
}

func workspaceFrom(r *http.Request) *model.Workspace {
	ws, _ := r.Context().Value(workspaceKey).(*model.Workspace)
	return ws
}

// saveWorkspace stores the workspace. A failure only costs the restored form
// on the next page load, so it is logged and swallowed.
func (h *Handler) saveWorkspace(r *http.Request, ws *model.Workspace) {
	if ws == nil {
		return
	}
	if err := h.workspaces.Save(r.Context(), ws); err != nil {
		h.logger.Error().Err(err).Str("workspace", string(ws.ID)).Msg("Error saving workspace")
	}
}
