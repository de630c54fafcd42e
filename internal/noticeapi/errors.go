package noticeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is wrapped when a success response cannot be decoded.
var ErrMalformedResponse = errors.New("noticeapi: malformed response")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method string
	Path   string
	Status int

	// Detail is the message from a JSON {"detail": ...} body, if any.
	Detail string
	// Body is the raw response text.
	Body string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if msg == "" {
		return fmt.Sprintf("noticeapi: %s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("noticeapi: %s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

// detailOf extracts the FastAPI style "detail" member. Validation failures
// carry a list of {msg} objects instead of a string.
func detailOf(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
