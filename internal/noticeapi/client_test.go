package noticeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/debemdeboas/notice-desk/internal/model"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClient_Templates(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/templates", r.URL.Path)
		_, _ = io.WriteString(w, `{"templates":["demand-letter","eviction-notice"]}`)
	})

	got, err := c.Templates(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"demand-letter", "eviction-notice"}, got)
}

func TestClient_Template(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/template/rent-default":
			_, _ = io.WriteString(w, `{"template":"RENT DEFAULT NOTICE"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Template not found"}`)
		}
	})

	body, err := c.Template(context.Background(), "rent-default")
	require.NoError(t, err)
	require.Equal(t, "RENT DEFAULT NOTICE", body)

	_, err = c.Template(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Template not found", apiErr.Detail)
}

func TestClient_Generate_WireFormat(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate-legal-notice", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, map[string]string{
			"party1_name":    "ABC Pvt Ltd",
			"party1_address": "Delhi",
			"party2_name":    "XYZ Pvt Ltd",
			"party2_address": "Mumbai",
			"issue":          "Trademark infringement",
			"template":       "",
		}, got)

		_, _ = io.WriteString(w, `{"draft_text":"LEGAL NOTICE"}`)
	})

	draft, err := c.Generate(context.Background(), model.NoticeRequest{
		Party1: model.Party{Name: "ABC Pvt Ltd", Address: "Delhi"},
		Party2: model.Party{Name: "XYZ Pvt Ltd", Address: "Mumbai"},
		Issue:  "Trademark infringement",
	})
	require.NoError(t, err)
	require.Equal(t, "LEGAL NOTICE", draft.Text)
}

func TestClient_Generate_Detail(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"issue required"}`)
	})

	_, err := c.Generate(context.Background(), model.NoticeRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "issue required", apiErr.Detail)
	require.Contains(t, apiErr.Error(), "status 500")
}

func TestClient_Save(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/save-notice", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":42,"status":"saved"}`)
	})

	saved, err := c.Save(context.Background(), model.NoticeRequest{Issue: "x"})
	require.NoError(t, err)
	require.Equal(t, model.NoticeID("42"), saved.ID)
	require.Equal(t, "saved", saved.Status)
}

func TestClient_Save_ErrorPageIsNotSuccess(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>Bad gateway</html>`)
	})

	_, err := c.Save(context.Background(), model.NoticeRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Empty(t, apiErr.Detail)
	require.Equal(t, "<html>Bad gateway</html>", apiErr.Body)
}

func TestClient_History(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/history", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"history":[{"id":3,"party1":"A","party2":"B","issue":"Unpaid rent","date":"2026-10-16T09:30:00.123456"}]}`)
	})

	entries, err := c.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, model.HistoryEntry{
		ID:     "3",
		Party1: "A",
		Party2: "B",
		Issue:  "Unpaid rent",
		Date:   "2026-10-16T09:30:00.123456",
	}, entries[0])
}

func TestClient_History_MissingListIsEmpty(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	entries, err := c.History(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestClient_DownloadPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4\n...")
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "draft body", got["draft_text"])
		require.NotContains(t, got, "template")

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})

	got, err := c.DownloadPDF(context.Background(), model.DraftRequest{DraftText: "draft body"})
	require.NoError(t, err)
	require.Equal(t, pdf, got)
}

func TestClient_EmailPDF(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "client@example.com", got["recipient_email"])
		require.Equal(t, "draft", got["draft_text"])
		_, _ = io.WriteString(w, `{"status":"Email sent successfully","recipient":"client@example.com"}`)
	})

	receipt, err := c.EmailPDF(context.Background(), model.EmailRequest{
		DraftRequest: model.DraftRequest{DraftText: "draft"},
		Recipient:    "client@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "client@example.com", receipt.Recipient)
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := c.Templates(context.Background())
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	err := c.Health(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestDetailOf(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail":"Email failed: RESEND_API_KEY not set"}`, want: "Email failed: RESEND_API_KEY not set"},
		{name: "validation list", body: `{"detail":[{"msg":"field required"},{"msg":"value is not a valid email"}]}`, want: "field required; value is not a valid email"},
		{name: "no detail", body: `{"error":"x"}`, want: ""},
		{name: "not json", body: `Internal Server Error`, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, detailOf([]byte(tc.body)))
		})
	}
}
