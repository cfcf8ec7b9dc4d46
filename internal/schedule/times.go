// Package schedule expands sparse medication scheduling hints into a
// concrete, gap-free reminder calendar with canonical timestamps.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Fallback hour applied when a time-of-day string cannot be parsed. A dose at
// a default time beats a dropped dose.
const (
	defaultHour   = 10
	defaultMinute = 0
	defaultSecond = 0
)

// NormalizeTime converts a free-form time-of-day string plus a calendar date
// into a canonical YYYY-MM-DDTHH:MM:SSZ timestamp. Inputs with an AM/PM
// marker are treated as 12-hour clock, everything else as 24-hour
// H[:M[:S]]. It never fails: unparseable input yields 10:00:00 on the same
// date.
func NormalizeTime(raw string, on time.Time) string {
	h, m, s := parseClock(raw)
	ts := time.Date(on.Year(), on.Month(), on.Day(), h, m, s, 0, time.UTC)
	return ts.Format(time.RFC3339)
}

func parseClock(raw string) (hour, minute, second int) {
	up := strings.ToUpper(strings.TrimSpace(raw))
	if up == "" {
		return defaultHour, defaultMinute, defaultSecond
	}

	isAM := strings.Contains(up, "AM")
	isPM := strings.Contains(up, "PM")

	text := up
	if isAM || isPM {
		text = strings.ReplaceAll(text, "AM", "")
		text = strings.ReplaceAll(text, "PM", "")
		text = strings.TrimSpace(text)
	}

	h, m, s, ok := splitHMS(text)
	if !ok {
		return defaultHour, defaultMinute, defaultSecond
	}

	if isAM || isPM {
		if h < 1 || h > 12 {
			return defaultHour, defaultMinute, defaultSecond
		}
		if isPM && h < 12 {
			h += 12
		}
		if isAM && h == 12 {
			h = 0
		}
	} else if h < 0 || h > 23 {
		return defaultHour, defaultMinute, defaultSecond
	}
	if m < 0 || m > 59 || s < 0 || s > 59 {
		return defaultHour, defaultMinute, defaultSecond
	}
	return h, m, s
}

func splitHMS(text string) (h, m, s int, ok bool) {
	parts := strings.Split(text, ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	vals := [3]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], true
}
