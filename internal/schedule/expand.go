package schedule

import (
	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// Defaults applied when the parsed medication carries no explicit window or
// timing. Today is injected by the caller so expansion stays deterministic.
const (
	defaultWindowDays = 30
	defaultDoseTime   = "10:00AM"
)

// Request carries the resolved scheduling hints for one medication.
type Request struct {
	Days      []constants.Weekday
	Timing    []string
	Frequency constants.Frequency
	StartDate *entity.Date
	EndDate   *entity.Date
	Today     entity.Date
}

// Expand produces the full reminder calendar for the request: one reminder
// per (selected day, timing entry) pair across [start, end] inclusive,
// ordered by date then by timing input order.
//
// as_needed medications have no fixed cadence and always expand to nothing.
// A missing start date defaults to tomorrow; a missing end date to
// start+30d; empty timing to a single 10:00AM dose.
func Expand(req Request) []entity.Reminder {
	reminders := []entity.Reminder{}
	if req.Frequency == constants.AsNeeded {
		return reminders
	}

	start := req.Today.AddDays(1)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := start.AddDays(defaultWindowDays)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	timing := req.Timing
	if len(timing) == 0 {
		timing = []string{defaultDoseTime}
	}

	selected := selectDays(req.Days, req.Frequency, start)

	for d := start; !d.After(end.Time); d = d.AddDays(1) {
		wd := constants.WeekdayOf(d.Time)
		if _, ok := selected[wd]; !ok {
			continue
		}
		for _, t := range timing {
			reminders = append(reminders, entity.Reminder{
				Weekday: wd,
				Date:    d,
				Time:    NormalizeTime(t, d.Time),
			})
		}
	}
	return reminders
}

// selectDays resolves the weekday set, in priority order: explicit days win;
// otherwise the frequency class decides.
func selectDays(days []constants.Weekday, freq constants.Frequency, start entity.Date) map[constants.Weekday]struct{} {
	set := make(map[constants.Weekday]struct{}, 7)
	if len(days) > 0 {
		for _, d := range days {
			set[d] = struct{}{}
		}
		return set
	}

	startDay := constants.WeekdayOf(start.Time)
	switch freq {
	case constants.TwiceAWeek:
		set[startDay] = struct{}{}
		set[startDay.Add(3)] = struct{}{}
	case constants.Weekly:
		set[startDay] = struct{}{}
	case constants.AlternateDays:
		// Fixed set regardless of start date; reminder consumers depend on
		// this stable set, so it does not actually alternate from the
		// start date.
		set[constants.Monday] = struct{}{}
		set[constants.Wednesday] = struct{}{}
		set[constants.Friday] = struct{}{}
		set[constants.Sunday] = struct{}{}
	default: // daily, custom without explicit days
		for _, d := range constants.AllWeekdays() {
			set[d] = struct{}{}
		}
	}
	return set
}
