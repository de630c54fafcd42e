package desk

import (
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/render"
)

// HistoryRow is one saved notice as the list shows it.
type HistoryRow struct {
	ID      model.NoticeID
	Title   string
	Summary string
	Date    string
}

type History struct {
	Rows []HistoryRow
}

func NewHistory(entries []model.HistoryEntry) History {
	rows := make([]HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, HistoryRow{
			ID:      e.ID,
			Title:   e.Party1 + " vs " + e.Party2,
			Summary: render.Summary(e.Issue, render.SummaryLength),
			Date:    render.RegionalDate(e.Date),
		})
	}
	return History{Rows: rows}
}

func (h History) Empty() bool {
	return len(h.Rows) == 0
}

// Placeholder is shown instead of an empty list.
func (h History) Placeholder() string {
	return MsgHistoryEmpty
}
