package constants

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is an ordered day-of-week enum, Monday-first. Day selection for
// reminder expansion does index arithmetic on this type, always modulo 7.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Add steps n days forward on the weekly cycle.
func (d Weekday) Add(n int) Weekday {
	return Weekday(((int(d)+n)%7 + 7) % 7)
}

// ParseWeekday resolves a lowercase/mixed-case day name. Unknown names report
// ok=false; callers decide whether to drop or default.
func ParseWeekday(s string) (Weekday, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if normalized == name {
			return Weekday(i), true
		}
	}
	return Monday, false
}

// WeekdayOf maps time.Weekday (Sunday-first) onto the Monday-first enum.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// AllWeekdays returns every day in Monday..Sunday order.
func AllWeekdays() []Weekday {
	out := make([]Weekday, 7)
	for i := range out {
		out[i] = Weekday(i)
	}
	return out
}

func (d Weekday) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Weekday) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	w, ok := ParseWeekday(s)
	if !ok {
		return fmt.Errorf("unknown weekday: %q", s)
	}
	*d = w
	return nil
}
