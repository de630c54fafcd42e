// Package desk mediates between a notice form and the remote legal-notice API.
//
// Every operation validates its input, makes at most one backend call and
// returns a Result carrying the value and the banner to show. Nothing is
// shared between operations except the template cache, so concurrent callers
// never see each other's outcome.
package desk

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/cache"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/noticeapi"
)

const (
	DefaultHistoryLimit = 10
	DefaultPDFFilename  = "Legal_Notice.pdf"
)

// API is the part of the notice backend the desk drives.
type API interface {
	Templates(ctx context.Context) ([]string, error)
	Template(ctx context.Context, name string) (string, error)
	Generate(ctx context.Context, req model.NoticeRequest) (model.NoticeDraft, error)
	Save(ctx context.Context, req model.NoticeRequest) (model.SavedNotice, error)
	History(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	DownloadPDF(ctx context.Context, req model.DraftRequest) ([]byte, error)
	EmailPDF(ctx context.Context, req model.EmailRequest) (model.EmailReceipt, error)
}

type Desk struct {
	api    API
	logger zerolog.Logger

	historyLimit int
	pdfFilename  string

	templateList   *cache.Expiring[string, []string]
	templateBodies *cache.Expiring[string, string]
}

type Option func(*Desk)

func WithLogger(l zerolog.Logger) Option {
	return func(d *Desk) {
		d.logger = l
	}
}

func WithHistoryLimit(n int) Option {
	return func(d *Desk) {
		if n > 0 {
			d.historyLimit = n
		}
	}
}

func WithPDFFilename(name string) Option {
	return func(d *Desk) {
		if name != "" {
			d.pdfFilename = name
		}
	}
}

// WithTemplateCache keeps template lists and bodies for ttl.
func WithTemplateCache(ttl time.Duration) Option {
	return func(d *Desk) {
		d.templateList = cache.NewExpiring[string, []string](ttl)
		d.templateBodies = cache.NewExpiring[string, string](ttl)
	}
}

func New(api API, opts ...Option) *Desk {
	d := &Desk{
		api:            api,
		logger:         zerolog.Nop(),
		historyLimit:   DefaultHistoryLimit,
		pdfFilename:    DefaultPDFFilename,
		templateList:   cache.NewExpiring[string, []string](0),
		templateBodies: cache.NewExpiring[string, string](0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

const templateListKey = "templates"

// LoadTemplates returns the selector options. A failure is only logged: the
// result then holds just the custom option and no banner.
func (d *Desk) LoadTemplates(ctx context.Context) Result[[]model.TemplateOption] {
	if ids, ok := d.templateList.Get(templateListKey); ok {
		return Result[[]model.TemplateOption]{Value: model.TemplateOptions(ids)}
	}

	ids, err := d.api.Templates(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("Templates failed")
		return Result[[]model.TemplateOption]{Value: model.TemplateOptions(nil), Err: err}
	}

	d.templateList.Set(templateListKey, ids)
	return Result[[]model.TemplateOption]{Value: model.TemplateOptions(ids)}
}

// LoadTemplate returns the body of the selected template; the caller replaces
// the issue field with it.
func (d *Desk) LoadTemplate(ctx context.Context, form model.Form) Result[string] {
	name := form.Template
	if name == "" {
		return invalid[string](MsgSelectTemplate)
	}

	if body, ok := d.templateBodies.Get(name); ok {
		return succeed(body, MsgTemplateLoaded)
	}

	body, err := d.api.Template(ctx, name)
	if err != nil {
		kind, msg := classify(err)
		if kind == KindServer {
			msg = fallbackTemplateNotFound
		}
		d.logger.Warn().Err(err).Str("template", name).Msg("Template failed")
		return fail[string](kind, fmt.Sprintf(MsgTemplateFailedFmt, msg), err)
	}

	d.templateBodies.Set(name, body)
	return succeed(body, MsgTemplateLoaded)
}

// GenerateDraft asks the backend for a draft. The result has no banner on
// success; the caller reveals the draft instead.
func (d *Desk) GenerateDraft(ctx context.Context, form model.Form) Result[model.NoticeDraft] {
	form = form.Trimmed()
	if !hasNoticeFields(form) {
		return invalid[model.NoticeDraft](MsgFillAllFields)
	}

	draft, err := d.api.Generate(ctx, noticeRequest(form))
	if err != nil {
		kind, msg := classify(err)
		if kind == KindServer && msg == "" {
			msg = fallbackGeneration
		}
		d.logger.Error().Err(err).Msg("Draft generation failed")
		return fail[model.NoticeDraft](kind, fmt.Sprintf(MsgGenerateFailedFmt, msg), err)
	}

	return Result[model.NoticeDraft]{Value: draft}
}

// SaveNotice stores the notice and returns the new id. The response status
// is checked before the body is trusted.
func (d *Desk) SaveNotice(ctx context.Context, form model.Form) Result[model.SavedNotice] {
	form = form.Trimmed()
	if !hasNoticeFields(form) {
		return invalid[model.SavedNotice](MsgFillFieldsFirst)
	}

	saved, err := d.api.Save(ctx, noticeRequest(form))
	if err == nil && saved.ID == "" {
		err = fmt.Errorf("%w: save response carries no id", noticeapi.ErrMalformedResponse)
	}
	if err != nil {
		kind, _ := classify(err)
		d.logger.Error().Err(err).Msg("Save failed")
		return fail[model.SavedNotice](kind, MsgSaveFailed, err)
	}

	d.logger.Info().Str("notice_id", string(saved.ID)).Msg("Notice saved")
	return succeed(saved, fmt.Sprintf(MsgSavedFmt, saved.ID))
}

// LoadHistory fetches the latest saved notices as display rows.
func (d *Desk) LoadHistory(ctx context.Context) Result[History] {
	entries, err := d.api.History(ctx, d.historyLimit)
	if err != nil {
		kind, _ := classify(err)
		d.logger.Error().Err(err).Msg("History failed")
		return fail[History](kind, MsgHistoryFailed, err)
	}
	return Result[History]{Value: NewHistory(entries)}
}

// LoadNotice only acknowledges the request; restoring a saved notice into
// the form is not available yet.
func (d *Desk) LoadNotice(_ context.Context, id model.NoticeID) Result[model.NoticeID] {
	return succeed(id, fmt.Sprintf(MsgLoadingFmt, id))
}

// PDF is a rendered notice ready to hand to the user.
type PDF struct {
	Filename string
	Data     []byte
}

func (d *Desk) DownloadPDF(ctx context.Context, form model.Form) Result[PDF] {
	if form.Draft == "" {
		return invalid[PDF](MsgNoDraftToPDF)
	}

	data, err := d.api.DownloadPDF(ctx, draftRequest(form))
	if err != nil {
		kind, msg := classify(err)
		var apiErr *noticeapi.APIError
		if errors.As(err, &apiErr) {
			msg = fmt.Sprintf("Server error: %d - %s", apiErr.Status, apiErr.Body)
		}
		d.logger.Error().Err(err).Msg("PDF failed")
		return fail[PDF](kind, fmt.Sprintf(MsgPDFFailedFmt, msg), err)
	}

	return succeed(PDF{Filename: d.pdfFilename, Data: data}, MsgPDFDownloaded)
}

// SendEmail mails the rendered notice. On success the caller clears the
// recipient field.
func (d *Desk) SendEmail(ctx context.Context, form model.Form) Result[model.EmailReceipt] {
	if form.Draft == "" {
		return invalid[model.EmailReceipt](MsgNoDraftToEmail)
	}

	recipient := strings.TrimSpace(form.Recipient)
	if !ValidEmail(recipient) {
		return invalid[model.EmailReceipt](MsgInvalidEmail)
	}

	receipt, err := d.api.EmailPDF(ctx, model.EmailRequest{
		DraftRequest: draftRequest(form),
		Recipient:    recipient,
	})
	if err != nil {
		kind, msg := classify(err)
		if kind == KindServer && msg == "" {
			msg = statusMessage(err)
		}
		d.logger.Error().Err(err).Msg("Email failed")
		return fail[model.EmailReceipt](kind, fmt.Sprintf(MsgEmailFailedFmt, msg), err)
	}

	if receipt.Recipient == "" {
		receipt.Recipient = recipient
	}
	return succeed(receipt, fmt.Sprintf(MsgEmailSentFmt, receipt.Recipient))
}

// ValidEmail accepts a bare RFC 5322 address. Display names are rejected.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

func hasNoticeFields(f model.Form) bool {
	return f.Party1 != "" && f.Party2 != "" && f.Issue != ""
}

func noticeRequest(f model.Form) model.NoticeRequest {
	return model.NoticeRequest{
		Party1:   model.ParseParty(f.Party1),
		Party2:   model.ParseParty(f.Party2),
		Issue:    f.Issue,
		Template: f.Template,
	}
}

func draftRequest(f model.Form) model.DraftRequest {
	return model.DraftRequest{
		Party1:    model.ParseParty(f.Party1),
		Party2:    model.ParseParty(f.Party2),
		Issue:     f.Issue,
		DraftText: f.Draft,
	}
}

// classify maps an API error to its kind and the message shown to the user.
func classify(err error) (Kind, string) {
	var apiErr *noticeapi.APIError
	switch {
	case errors.As(err, &apiErr):
		return KindServer, apiErr.Detail
	case errors.Is(err, noticeapi.ErrMalformedResponse):
		return KindServer, "unexpected response from server"
	default:
		return KindTransport, transportMessage(err)
	}
}

func statusMessage(err error) string {
	var apiErr *noticeapi.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("server returned status %d", apiErr.Status)
	}
	return "unexpected response from server"
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return "could not reach the notice service: " + urlErr.Err.Error()
	}
	return "could not reach the notice service"
}
