package habit

import "github.com/google/uuid"

// LongestStreakLookback bounds how far back LongestStreak scans. The
// cap keeps the scan O(lookback) regardless of history size; streaks
// older than a year are not reported.
const LongestStreakLookback = 365

// currentStreakBound terminates CurrentStreak on corrupt data; no
// legitimate run can exceed the longest-streak lookback by more than
// a day.
const currentStreakBound = LongestStreakLookback + 1

// CurrentStreak counts consecutive completed days ending at ref,
// walking backward one day at a time. If ref itself is not completed
// the streak is 0.
func CurrentStreak(h *Habit, ref Day) int {
	streak := 0
	for d := ref; h.CompletedOn(d); d = d.AddDays(-1) {
		streak++
		if streak >= currentStreakBound {
			break
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days
// within the last LongestStreakLookback days ending at ref.
func LongestStreak(h *Habit, ref Day) int {
	longest, run := 0, 0
	for i := 0; i < LongestStreakLookback; i++ {
		if h.CompletedOn(ref.AddDays(-i)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// CompletionRate returns the percentage (0-100) of completed days in
// the inclusive window [ref-(windowDays-1), ref]. The denominator is
// always windowDays, so a habit younger than the window shows a
// proportionally lower rate.
func CompletionRate(h *Habit, ref Day, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	completed := 0
	for i := 0; i < windowDays; i++ {
		if h.CompletedOn(ref.AddDays(-i)) {
			completed++
		}
	}
	return float64(completed) / float64(windowDays) * 100
}

// WeekdayDistribution maps each weekday label to the raw count of
// completions on that weekday across the habit's entire history.
// Counts, not rates: normalization is a presentation concern.
func WeekdayDistribution(h *Habit) map[string]int {
	dist := make(map[string]int, len(WeekdayLabels))
	for _, label := range WeekdayLabels {
		dist[label] = 0
	}
	for d := range h.Completed {
		dist[d.Label()]++
	}
	return dist
}

// MonthlyProgress maps every day in the inclusive range [ref-30, ref]
// to 1 if completed, else 0. Unlike the weekday distribution the map
// is dense: every day in range appears, zeros included, so the
// calendar heatmap has a cell per day.
func MonthlyProgress(h *Habit, ref Day) map[Day]int {
	progress := make(map[Day]int, 31)
	for _, d := range DaysIn(ref.AddDays(-30), ref) {
		if h.CompletedOn(d) {
			progress[d] = 1
		} else {
			progress[d] = 0
		}
	}
	return progress
}

// Stats is a per-habit analytics snapshot. Derived on demand from the
// completion set plus a reference day; never stored.
type Stats struct {
	HabitID          uuid.UUID
	Title            string
	Emoji            string
	Color            Color
	CompletionRate   float64
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	WeekdayDist      map[string]int
	MonthlyProgress  map[Day]int
}

// ComputeStats derives the full analytics snapshot for one habit.
func ComputeStats(h *Habit, ref Day, period Period) Stats {
	return Stats{
		HabitID:          h.ID,
		Title:            h.Title,
		Emoji:            h.Emoji,
		Color:            h.Color,
		CompletionRate:   CompletionRate(h, ref, period.Days()),
		CurrentStreak:    CurrentStreak(h, ref),
		LongestStreak:    LongestStreak(h, ref),
		TotalCompletions: h.TotalCompletions(),
		WeekdayDist:      WeekdayDistribution(h),
		MonthlyProgress:  MonthlyProgress(h, ref),
	}
}
