package habit

// Period is the analysis window used for rates and trends.
type Period int

const (
	PeriodWeek  Period = 7
	PeriodMonth Period = 30
	PeriodYear  Period = 365
)

// Periods lists the selectable analysis windows in display order.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodYear}

// Days returns the window size in days.
func (p Period) Days() int { return int(p) }

// Title returns the display title for the period.
func (p Period) Title() string {
	switch p {
	case PeriodWeek:
		return "Last Week"
	case PeriodMonth:
		return "Last Month"
	case PeriodYear:
		return "Last Year"
	default:
		return "Custom"
	}
}

// ShortTitle returns the compact tab label for the period.
func (p Period) ShortTitle() string {
	switch p {
	case PeriodWeek:
		return "1W"
	case PeriodMonth:
		return "1M"
	case PeriodYear:
		return "1Y"
	default:
		return "?"
	}
}

// NoHabitsSentinel is reported as the best performer when the
// collection is empty.
const NoHabitsSentinel = "No habits yet"

// Metrics is the dashboard-wide aggregate over the whole collection.
type Metrics struct {
	TotalHabits           int
	ActiveHabits          int
	AverageCompletionRate float64
	BestPerformingHabit   string
	TotalCompletions      int
	WeeklyTrend           map[string]float64
	MaxStreak             int
	TotalActiveStreaks    int
}

// ComputeMetrics aggregates per-habit analytics across the collection
// for the given period and reference day. It is a full recompute on
// every call; habit counts and lookback windows are small enough that
// incremental updates are not worth their staleness bugs.
func ComputeMetrics(habits []*Habit, period Period, ref Day) Metrics {
	m := Metrics{
		TotalHabits:         len(habits),
		BestPerformingHabit: NoHabitsSentinel,
		WeeklyTrend:         weeklyTrend(habits, ref),
	}

	bestRate := -1.0
	var rateSum float64

	for _, h := range habits {
		rate := CompletionRate(h, ref, period.Days())
		rateSum += rate
		// Strict > keeps the first maximum in iteration order on ties.
		if rate > bestRate {
			bestRate = rate
			m.BestPerformingHabit = h.Title
		}

		if CurrentStreak(h, ref) > 0 {
			m.ActiveHabits++
		}
		if longest := LongestStreak(h, ref); longest > m.MaxStreak {
			m.MaxStreak = longest
		}
		// Lifetime count, deliberately independent of the period.
		m.TotalCompletions += h.TotalCompletions()
	}

	if len(habits) > 0 {
		m.AverageCompletionRate = rateSum / float64(len(habits))
	}
	m.TotalActiveStreaks = m.ActiveHabits

	return m
}

// weeklyTrend maps each of the last 7 calendar days (keyed by weekday
// label) to the percentage of habits completed on that day.
func weeklyTrend(habits []*Habit, ref Day) map[string]float64 {
	trend := make(map[string]float64, 7)
	for i := 6; i >= 0; i-- {
		d := ref.AddDays(-i)
		if len(habits) == 0 {
			trend[d.Label()] = 0
			continue
		}
		completed := 0
		for _, h := range habits {
			if h.CompletedOn(d) {
				completed++
			}
		}
		trend[d.Label()] = float64(completed) / float64(len(habits)) * 100
	}
	return trend
}
