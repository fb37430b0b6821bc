package store

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts lists the accepted layouts beyond RFC3339. The datasets
// are hand-editable, so common spreadsheet variants must parse too.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
}

// parseTimestamp converts a dataset field to a timezone-aware time. Naive
// values are localized to loc. Blank or unparseable values yield nil.
func parseTimestamp(val string, loc *time.Location) *time.Time {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// formatTimestamp renders a time as RFC3339 with offset, or "" for nil.
func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// parseIntField parses an integer dataset field. Spreadsheet round-trips can
// turn integers into "3.0", so a float fallback is accepted. The second
// return is false for blank or unparseable values.
func parseIntField(val string) (int64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
