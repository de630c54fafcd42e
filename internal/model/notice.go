package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NoticeID identifies a saved notice. The backend emits integers; strings are
// accepted too.
type NoticeID string

func (id *NoticeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NoticeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("notice id: %w", err)
	}
	*id = NoticeID(n.String())
	return nil
}

// Form holds the raw field values as a front end collected them.
type Form struct {
	Party1    string `json:"party1"`
	Party2    string `json:"party2"`
	Issue     string `json:"issue"`
	Template  string `json:"template"`
	Draft     string `json:"draft"`
	Recipient string `json:"recipient"`
}

// Trimmed returns a copy with the party and issue blocks trimmed.
func (f Form) Trimmed() Form {
	f.Party1 = strings.TrimSpace(f.Party1)
	f.Party2 = strings.TrimSpace(f.Party2)
	f.Issue = strings.TrimSpace(f.Issue)
	f.Recipient = strings.TrimSpace(f.Recipient)
	return f
}

// NoticeRequest is the payload for drafting and saving a notice.
type NoticeRequest struct {
	Party1   Party
	Party2   Party
	Issue    string
	Template string
}

// DraftRequest carries an existing draft for PDF rendering.
type DraftRequest struct {
	Party1    Party
	Party2    Party
	Issue     string
	DraftText string
}

type EmailRequest struct {
	DraftRequest
	Recipient string
}

type NoticeDraft struct {
	Text string
}

type SavedNotice struct {
	ID     NoticeID
	Status string
}

type EmailReceipt struct {
	Status    string
	Recipient string
}

// HistoryEntry is a saved notice summary as returned by the API.
type HistoryEntry struct {
	ID     NoticeID `json:"id"`
	Party1 string   `json:"party1"`
	Party2 string   `json:"party2"`
	Issue  string   `json:"issue"`
	Date   string   `json:"date"`
}
