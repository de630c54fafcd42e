package render

import (
	"strings"
	"time"
)

const SummaryLength = 60

// RegionalDateLayout is the en-IN short date: day/month/year without padding.
const RegionalDateLayout = "2/1/2006"

// Summary cuts issue to n runes and always appends an ellipsis.
func Summary(issue string, n int) string {
	r := []rune(issue)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

// The backend stores Python isoformat() timestamps, usually without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

// RegionalDate formats a backend timestamp as d/m/yyyy. Values in an unknown
// format are returned unchanged.
func RegionalDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(RegionalDateLayout)
		}
	}
	return raw
}
