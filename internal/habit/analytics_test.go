package habit

import (
	"math"
	"testing"
)

// ref is a fixed reference day (a Friday) so analytics tests never
// depend on the wall clock.
const ref = Day("2025-03-14")

// habitWithOffsets builds a habit completed on ref+offset for each
// given (non-positive) offset.
func habitWithOffsets(t *testing.T, offsets ...int) *Habit {
	t.Helper()
	h := New("Test", "", "✅", Color{})
	for _, off := range offsets {
		h.Completed[ref.AddDays(off)] = struct{}{}
	}
	return h
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty history", nil, 0},
		{"today only", []int{0}, 1},
		{"three day run ending today", []int{-2, -1, 0}, 3},
		{"run broken yesterday", []int{-3, -2, 0}, 1},
		{"reference day not completed", []int{-3, -2, -1}, 0},
		{"gap before the run does not count", []int{-5, -2, -1, 0}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := habitWithOffsets(t, tc.offsets...)
			if got := CurrentStreak(h, ref); got != tc.want {
				t.Fatalf("expected streak %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCurrentStreakTerminatesOnLongHistory(t *testing.T) {
	h := New("Everyday", "", "", Color{})
	for d := ref.AddDays(-800); d <= ref; d = d.AddDays(1) {
		h.Completed[d] = struct{}{}
	}
	if got := CurrentStreak(h, ref); got != currentStreakBound {
		t.Fatalf("expected safety bound %d, got %d", currentStreakBound, got)
	}
}

func TestLongestStreakTwoRuns(t *testing.T) {
	// Runs at {D-10..D-8} and {D-3..D}; the recent run of 4 wins.
	h := habitWithOffsets(t, -10, -9, -8, -3, -2, -1, 0)
	if got := LongestStreak(h, ref); got != 4 {
		t.Fatalf("expected longest streak 4, got %d", got)
	}
}

func TestLongestStreakOldRunWins(t *testing.T) {
	h := habitWithOffsets(t, -20, -19, -18, -17, -16, -1, 0)
	if got := LongestStreak(h, ref); got != 5 {
		t.Fatalf("expected longest streak 5, got %d", got)
	}
}

func TestLongestStreakIgnoresDaysBeyondLookback(t *testing.T) {
	h := New("Old", "", "", Color{})
	// A long run entirely outside the lookback window.
	for i := 400; i < 420; i++ {
		h.Completed[ref.AddDays(-i)] = struct{}{}
	}
	h.Completed[ref] = struct{}{}
	if got := LongestStreak(h, ref); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestCompletionRateWindow(t *testing.T) {
	// Completed on exactly {D-2, D-1, D}: 3/7 of the week window.
	h := habitWithOffsets(t, -2, -1, 0)
	got := CompletionRate(h, ref, 7)
	want := 3.0 / 7.0 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, got)
	}
}

func TestCompletionRateBounds(t *testing.T) {
	full := New("Full", "", "", Color{})
	for i := 0; i < 30; i++ {
		full.Completed[ref.AddDays(-i)] = struct{}{}
	}

	tests := []struct {
		name   string
		h      *Habit
		window int
		want   float64
	}{
		{"empty habit", habitWithOffsets(t), 7, 0},
		{"fully completed window", full, 30, 100},
		{"zero window", full, 0, 0},
		{"negative window", full, -5, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CompletionRate(tc.h, ref, tc.window)
			if got != tc.want {
				t.Fatalf("expected %.1f, got %.1f", tc.want, got)
			}
			if got < 0 || got > 100 {
				t.Fatalf("rate out of bounds: %f", got)
			}
		})
	}
}

func TestCompletionRateFixedDenominator(t *testing.T) {
	// Completions outside the window do not shrink the denominator.
	h := habitWithOffsets(t, 0, -40, -41)
	got := CompletionRate(h, ref, 7)
	want := 1.0 / 7.0 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, got)
	}
}

func TestWeekdayDistributionCountsNotRates(t *testing.T) {
	h := New("Mondays", "", "", Color{})
	// Every Monday for four weeks, nothing else.
	monday := Day("2025-03-10")
	for i := 0; i < 4; i++ {
		h.Completed[monday.AddDays(-7*i)] = struct{}{}
	}

	dist := WeekdayDistribution(h)
	if dist["Mon"] != 4 {
		t.Fatalf("expected Mon count 4, got %d", dist["Mon"])
	}
	for _, label := range WeekdayLabels {
		if label == "Mon" {
			continue
		}
		if dist[label] != 0 {
			t.Errorf("expected %s count 0, got %d", label, dist[label])
		}
	}
	// All seven labels present even when zero.
	if len(dist) != 7 {
		t.Fatalf("expected 7 weekday buckets, got %d", len(dist))
	}
}

func TestMonthlyProgressIsDense(t *testing.T) {
	h := habitWithOffsets(t, 0, -5, -30)
	progress := MonthlyProgress(h, ref)

	if len(progress) != 31 {
		t.Fatalf("expected 31 days, got %d", len(progress))
	}
	if progress[ref] != 1 || progress[ref.AddDays(-5)] != 1 || progress[ref.AddDays(-30)] != 1 {
		t.Fatal("completed days should map to 1")
	}
	if progress[ref.AddDays(-1)] != 0 {
		t.Fatal("uncompleted days should map to 0, not be absent")
	}
	// A completion outside the window must not appear.
	if _, ok := progress[ref.AddDays(-31)]; ok {
		t.Fatal("day outside the window should not appear")
	}
}

func TestComputeStats(t *testing.T) {
	h := habitWithOffsets(t, -2, -1, 0)
	h.Title = "Exercise"
	h.Emoji = "🏃"

	stats := ComputeStats(h, ref, PeriodWeek)
	if stats.HabitID != h.ID || stats.Title != "Exercise" || stats.Emoji != "🏃" {
		t.Fatal("identity fields should pass through")
	}
	if stats.CurrentStreak != 3 || stats.LongestStreak != 3 {
		t.Fatalf("unexpected streaks: %d/%d", stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.TotalCompletions != 3 {
		t.Fatalf("expected 3 completions, got %d", stats.TotalCompletions)
	}
	if len(stats.MonthlyProgress) != 31 || len(stats.WeekdayDist) != 7 {
		t.Fatal("derived maps have wrong shape")
	}
}
