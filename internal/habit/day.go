package habit

import (
	"math"
	"time"
)

// dayLayout is the canonical day-key format. ISO dates sort
// lexicographically in chronological order, so Day values can be
// compared with < and > directly.
const dayLayout = "2006-01-02"

// Day identifies one local calendar day. All completion tracking is
// keyed by Day; arbitrary timestamps must pass through DayOf before
// entering a habit's completion set.
type Day string

// DayOf projects a timestamp onto its local calendar day. It is
// idempotent: DayOf(d.Time()) == d for any Day d.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Today returns the current local day.
func Today() Day {
	return DayOf(time.Now())
}

// IsToday reports whether d is the current local day.
func IsToday(d Day) bool {
	return d == Today()
}

// Time returns midnight local time at the start of d. Malformed day
// keys yield the zero time.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(dayLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n calendar days after d (before, if n is
// negative). Uses calendar arithmetic, so daylight-saving transitions
// do not shift the result.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the day of week for d.
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Label returns the short weekday label ("Mon".."Sun") used to key
// weekday distributions and the weekly trend.
func (d Day) Label() string {
	return d.Time().Format("Mon")
}

// DaysBetween returns the signed number of calendar days from a to b.
// Midnight-to-midnight distance is rounded to the nearest day so a
// 23- or 25-hour DST day still counts as one.
func DaysBetween(a, b Day) int {
	diff := b.Time().Sub(a.Time())
	return int(math.Round(diff.Hours() / 24))
}

// WeekOf returns the Monday-through-Sunday week containing d. Week
// start is fixed at Monday.
func WeekOf(d Day) [7]Day {
	offset := int(d.Weekday()-time.Monday+7) % 7
	monday := d.AddDays(-offset)

	var week [7]Day
	for i := range week {
		week[i] = monday.AddDays(i)
	}
	return week
}

// DaysIn returns every day in the inclusive range [from, to], in
// order. Returns nil if from is after to.
func DaysIn(from, to Day) []Day {
	if from > to {
		return nil
	}
	days := make([]Day, 0, DaysBetween(from, to)+1)
	for d := from; d <= to; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WeekdayLabels lists the seven labels in Monday-first order, matching
// the WeekOf convention.
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
