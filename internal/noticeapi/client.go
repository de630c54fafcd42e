// Package noticeapi is a typed client for the remote legal-notice backend.
package noticeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/model"
)

const DefaultBaseURL = "https://legal-ai-pro-1.onrender.com"

const (
	pathTemplates = "/templates"
	pathTemplate  = "/template/"
	pathGenerate  = "/generate-legal-notice"
	pathSave      = "/save-notice"
	pathHistory   = "/history"
	pathPDF       = "/download-pdf"
	pathEmail     = "/email-pdf"
	pathHealth    = "/health"
)

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Templates lists the template identifiers known to the backend.
func (c *Client) Templates(ctx context.Context) ([]string, error) {
	var out templatesResponse
	if err := c.doJSON(ctx, http.MethodGet, pathTemplates, nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// Template fetches the body of a named template.
func (c *Client) Template(ctx context.Context, name string) (string, error) {
	var out templateResponse
	if err := c.doJSON(ctx, http.MethodGet, pathTemplate+url.PathEscape(name), nil, &out); err != nil {
		return "", err
	}
	return out.Template, nil
}

func (c *Client) Generate(ctx context.Context, req model.NoticeRequest) (model.NoticeDraft, error) {
	var out draftResponse
	if err := c.doJSON(ctx, http.MethodPost, pathGenerate, newNoticeBody(req), &out); err != nil {
		return model.NoticeDraft{}, err
	}
	return model.NoticeDraft{Text: out.DraftText}, nil
}

func (c *Client) Save(ctx context.Context, req model.NoticeRequest) (model.SavedNotice, error) {
	var out saveResponse
	if err := c.doJSON(ctx, http.MethodPost, pathSave, newNoticeBody(req), &out); err != nil {
		return model.SavedNotice{}, err
	}
	return model.SavedNotice{ID: out.ID, Status: out.Status}, nil
}

// History returns at most limit saved notices, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	path := pathHistory + "?limit=" + strconv.Itoa(limit)

	var out historyResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.History == nil {
		return []model.HistoryEntry{}, nil
	}
	return out.History, nil
}

// DownloadPDF returns the rendered PDF bytes for a draft.
func (c *Client) DownloadPDF(ctx context.Context, req model.DraftRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, pathPDF, newDraftBody(req))
}

func (c *Client) EmailPDF(ctx context.Context, req model.EmailRequest) (model.EmailReceipt, error) {
	body := emailBody{
		draftBody:      newDraftBody(req.DraftRequest),
		RecipientEmail: req.Recipient,
	}

	var out emailResponse
	if err := c.doJSON(ctx, http.MethodPost, pathEmail, body, &out); err != nil {
		return model.EmailReceipt{}, err
	}
	return model.EmailReceipt{Status: out.Status, Recipient: out.Recipient}, nil
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, pathHealth, nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	data, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

// do sends one request and returns the body of a 2xx response. Any other
// status becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("noticeapi: encode %s body: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("noticeapi: %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return nil, fmt.Errorf("noticeapi: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("noticeapi: read %s %s: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Notice API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Detail: detailOf(data),
			Body:   string(data),
		}
	}
	return data, nil
}
