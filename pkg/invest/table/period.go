package table

import (
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 calendar-date layout used for period columns.
const DateFormat = "2006-01-02"

// Layouts accepted for native provider period labels, most specific first.
var periodLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateFormat,
}

// NormalizePeriod maps a native column label to an ISO-8601 calendar date,
// truncating any time component. The reserved labels "Metrics" and "TTM"
// pass through unchanged.
func NormalizePeriod(label string) (string, error) {
	if label == MetricsColumn || label == TTMColumn {
		return label, nil
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Format(DateFormat), nil
		}
	}
	return "", fmt.Errorf("period %q is not a recognizable date", label)
}
