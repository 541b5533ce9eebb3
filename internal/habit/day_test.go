package habit

import (
	"testing"
	"time"
)

func TestDayOfNormalizes(t *testing.T) {
	noon := time.Date(2025, 3, 14, 12, 34, 56, 789, time.Local)
	d := DayOf(noon)
	if d != Day("2025-03-14") {
		t.Fatalf("expected 2025-03-14, got %s", d)
	}

	// Idempotence: normalizing the day's own midnight changes nothing.
	if DayOf(d.Time()) != d {
		t.Fatalf("DayOf not idempotent: %s != %s", DayOf(d.Time()), d)
	}
}

func TestAddDaysAcrossMonthBoundary(t *testing.T) {
	d := Day("2025-01-31")
	if got := d.AddDays(1); got != Day("2025-02-01") {
		t.Fatalf("expected 2025-02-01, got %s", got)
	}
	if got := d.AddDays(-31); got != Day("2024-12-31") {
		t.Fatalf("expected 2024-12-31, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b Day
		want int
	}{
		{"2025-03-01", "2025-03-01", 0},
		{"2025-03-01", "2025-03-08", 7},
		{"2025-03-08", "2025-03-01", -7},
		{"2024-12-25", "2025-01-05", 11},
		// Spans the US spring-forward transition (Mar 9, 2025).
		{"2025-03-08", "2025-03-10", 2},
	}
	for _, tc := range tests {
		if got := DaysBetween(tc.a, tc.b); got != tc.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDayOrdering(t *testing.T) {
	// ISO keys must sort chronologically with plain string comparison.
	if !(Day("2025-01-02") < Day("2025-01-10")) {
		t.Fatal("expected 2025-01-02 < 2025-01-10")
	}
	if !(Day("2024-12-31") < Day("2025-01-01")) {
		t.Fatal("expected year boundary to order correctly")
	}
}

func TestWeekOfStartsMonday(t *testing.T) {
	// 2025-03-14 is a Friday; its week runs Mar 10 (Mon) - Mar 16 (Sun).
	week := WeekOf(Day("2025-03-14"))
	if week[0] != Day("2025-03-10") {
		t.Fatalf("expected week to start 2025-03-10, got %s", week[0])
	}
	if week[6] != Day("2025-03-16") {
		t.Fatalf("expected week to end 2025-03-16, got %s", week[6])
	}
	if week[0].Weekday() != time.Monday {
		t.Fatalf("expected Monday start, got %s", week[0].Weekday())
	}

	// A Sunday belongs to the week that began the previous Monday.
	week = WeekOf(Day("2025-03-16"))
	if week[0] != Day("2025-03-10") {
		t.Fatalf("Sunday should map back to Monday 2025-03-10, got %s", week[0])
	}

	// A Monday is its own week start.
	week = WeekOf(Day("2025-03-10"))
	if week[0] != Day("2025-03-10") {
		t.Fatalf("Monday should be its own week start, got %s", week[0])
	}
}

func TestDaysIn(t *testing.T) {
	days := DaysIn(Day("2025-02-27"), Day("2025-03-02"))
	want := []Day{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}

	if got := DaysIn(Day("2025-03-02"), Day("2025-03-01")); got != nil {
		t.Fatalf("inverted range should be nil, got %v", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Day("2025-03-10").Label(); got != "Mon" {
		t.Fatalf("expected Mon, got %s", got)
	}
	if got := Day("2025-03-16").Label(); got != "Sun" {
		t.Fatalf("expected Sun, got %s", got)
	}
}
