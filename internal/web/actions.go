package web

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/repository/archive"
	"github.com/debemdeboas/notice-desk/internal/routes"
	"github.com/debemdeboas/notice-desk/internal/sse"
)

// Client-side events raised through HX-Trigger.
const (
	eventHistoryChanged = "historyChanged"
	eventDownloadReady  = "downloadReady"
)

// formFrom reads the notice form exactly as the browser submitted it.
func formFrom(r *http.Request) model.Form {
	return model.Form{
		Party1:    r.PostFormValue("party1"),
		Party2:    r.PostFormValue("party2"),
		Issue:     r.PostFormValue("issue"),
		Template:  r.PostFormValue("template"),
		Draft:     r.PostFormValue("draft"),
		Recipient: r.PostFormValue("recipient"),
	}
}

// keepForm remembers the submitted fields so a reload restores them.
func (h *Handler) keepForm(r *http.Request, form model.Form) *model.Workspace {
	ws := workspaceFrom(r)
	if ws != nil {
		ws.Form = form
		h.saveWorkspace(r, ws)
	}
	return ws
}

func trigger(w http.ResponseWriter, events map[string]any) {
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set(config.HHxTrigger, string(data))
}

func (h *Handler) actionTemplate(w http.ResponseWriter, r *http.Request) {
	form := formFrom(r)
	res := h.desk.LoadTemplate(r.Context(), form)
	if res.Failed() {
		h.keepForm(r, form)
		h.reply(w, res.Banner)
		return
	}

	form.Issue = res.Value
	h.keepForm(r, form)
	h.reply(w, res.Banner, fragment{tmplIssueField, fieldView{Value: res.Value, OOB: true}})
}

func (h *Handler) actionGenerate(w http.ResponseWriter, r *http.Request) {
	form := formFrom(r)
	res := h.desk.GenerateDraft(r.Context(), form)
	if res.Failed() {
		h.keepForm(r, form)
		h.reply(w, res.Banner)
		return
	}

	form.Draft = res.Value.Text
	h.keepForm(r, form)
	h.reply(w, res.Banner, fragment{tmplDraftSection, newDraftView(res.Value.Text, true)})
}

func (h *Handler) actionSave(w http.ResponseWriter, r *http.Request) {
	form := formFrom(r)
	res := h.desk.SaveNotice(r.Context(), form)
	if res.Failed() {
		h.keepForm(r, form)
		h.reply(w, res.Banner)
		return
	}

	if ws := workspaceFrom(r); ws != nil {
		ws.LastSavedID = res.Value.ID
		h.keepForm(r, form)
		h.clients.Broadcast(ws.ID, sse.EventHistory)
	}

	trigger(w, map[string]any{eventHistoryChanged: string(res.Value.ID)})
	h.reply(w, res.Banner, fragment{tmplLastSaved, lastSavedView{ID: res.Value.ID, OOB: true}})
}

func (h *Handler) actionNotice(w http.ResponseWriter, r *http.Request) {
	id := model.NoticeID(chi.URLParam(r, "id"))
	res := h.desk.LoadNotice(r.Context(), id)
	h.reply(w, res.Banner)
}

func (h *Handler) actionPDF(w http.ResponseWriter, r *http.Request) {
	form := formFrom(r)
	ws := h.keepForm(r, form)

	res := h.desk.DownloadPDF(r.Context(), form)
	if res.Failed() {
		h.reply(w, res.Banner)
		return
	}

	if ws != nil {
		key := archive.Key(ws.ID, h.now(), res.Value.Filename)
		if loc, err := h.archive.Put(r.Context(), key, res.Value.Data); err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Error archiving PDF")
		} else if loc != "" {
			h.logger.Info().Str("location", loc).Msg("PDF archived")
		}
	}

	token := uuid.NewString()
	h.downloads.Set(token, res.Value)

	trigger(w, map[string]any{eventDownloadReady: map[string]string{"url": fmt.Sprintf(routes.DownloadsFmt, token)}})
	h.reply(w, res.Banner)
}

// serveDownload hands out a prepared PDF once.
func (h *Handler) serveDownload(w http.ResponseWriter, r *http.Request) {
	pdf, ok := h.downloads.Take(chi.URLParam(r, "token"))
	if !ok {
		http.Error(w, config.ErrDownloadExpired, http.StatusGone)
		return
	}

	w.Header().Set(config.HCType, config.CTypePDF)
	w.Header().Set(config.HContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": pdf.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf.Data)))
	w.Header().Set(config.HCacheControl, "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf.Data)
}

func (h *Handler) actionEmail(w http.ResponseWriter, r *http.Request) {
	form := formFrom(r)
	res := h.desk.SendEmail(r.Context(), form)
	if res.Failed() {
		h.keepForm(r, form)
		h.reply(w, res.Banner)
		return
	}

	form.Recipient = ""
	h.keepForm(r, form)
	h.reply(w, res.Banner, fragment{tmplRecipientField, fieldView{OOB: true}})
}

