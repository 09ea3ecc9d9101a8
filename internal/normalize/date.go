// Package normalize turns raw spreadsheet cell values into the closed
// vocabularies of the canonical record: instants, priority tiers,
// lifecycle states, and group codes. Every function here is total over
// strings; failure is signalled through a boolean, never a panic.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoLayouts are the unambiguous machine-readable formats tried first.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// brLayouts capture day/month/year explicitly. Locale-dependent parsing is
// off the table: day-month order mixups are the dominant corruption source
// in these exports, so the layouts pin dd/MM and nothing else is accepted.
var brLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006T15:04:05",
	"02/01/2006 15:04",
	"02/01/2006T15:04",
	"02/01/2006",
}

// serialRe matches a spreadsheet serial date: a plain number with an
// optional fractional time-of-day part.
var serialRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// serialEpoch is the spreadsheet day-zero. The 1899-12-30 baseline
// compensates for the historical lotus leap-year bug, so serial 1 lands on
// 1899-12-31.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.Local)

// ParseDate parses a heterogeneous date representation into an instant.
// Attempts, first success wins: ISO timestamps, dd/MM/yyyy with optional
// time, spreadsheet serial numbers. Returns ok=false when nothing matches;
// callers own the fallback policy, ParseDate never substitutes "now".
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	for _, layout := range brLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	if serialRe.MatchString(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(serial), true
		}
	}

	return time.Time{}, false
}

// fromSerial converts a spreadsheet serial number to an instant: the whole
// part is a day count from the epoch, the fractional part is time-of-day.
func fromSerial(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)
	seconds := int(frac*86400 + 0.5)
	return serialEpoch.AddDate(0, 0, days).Add(time.Duration(seconds) * time.Second)
}

// FormatISO renders an instant in the canonical ISO-8601 form used by
// downstream consumers. The zero instant renders as "".
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04:05")
}
