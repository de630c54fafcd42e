package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/render"
)

// Template names defined in partials.html.
const (
	tmplBanner          = "banner"
	tmplTemplateOptions = "template-options"
	tmplIssueField      = "issue-field"
	tmplDraftSection    = "draft-section"
	tmplHistory         = "history"
	tmplLastSaved       = "last-saved"
	tmplRecipientField  = "recipient-field"
)

type bannerView struct {
	Level       string
	Message     string
	Visible     bool
	HideAfterMs int64
	OOB         bool
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	Value string
	OOB   bool
}

type draftView struct {
	Draft   string
	Preview template.HTML
	OOB     bool
}

type historyView struct {
	Rows        []desk.HistoryRow
	Placeholder string
}

type lastSavedView struct {
	ID  model.NoticeID
	OOB bool
}

// fragment is one named template rendered into a response.
type fragment struct {
	name string
	data any
}

func (h *Handler) bannerView(b desk.Banner) bannerView {
	return bannerView{
		Level:       b.Level.String(),
		Message:     b.Message,
		Visible:     b.Visible(),
		HideAfterMs: h.bannerHideAfter.Milliseconds(),
	}
}

func optionViews(opts []model.TemplateOption, selected string) []optionView {
	views := make([]optionView, 0, len(opts))
	for _, o := range opts {
		views = append(views, optionView{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return views
}

func newDraftView(text string, oob bool) draftView {
	v := draftView{Draft: text, OOB: oob}
	if text != "" {
		v.Preview = template.HTML(render.RenderDraftCached(text))
	}
	return v
}

func newHistoryView(res desk.Result[desk.History]) historyView {
	return historyView{
		Rows:        res.Value.Rows,
		Placeholder: res.Value.Placeholder(),
	}
}

// reply is the banner reconciler: it writes the operation's banner followed
// by any out-of-band fragments. Banner-level failures still answer 200 so
// htmx swaps them in.
func (h *Handler) reply(w http.ResponseWriter, b desk.Banner, oob ...fragment) {
	h.write(w, append([]fragment{{tmplBanner, h.bannerView(b)}}, oob...)...)
}

func (h *Handler) write(w http.ResponseWriter, frags ...fragment) {
	var buf bytes.Buffer
	for _, f := range frags {
		if err := h.tmpl.ExecuteTemplate(&buf, f.name, f.data); err != nil {
			h.logger.Error().Err(err).Str("template", f.name).Msg("Error rendering fragment")
			http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
