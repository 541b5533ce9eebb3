package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/habitflow/habitflow/internal/habit"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Summary    jsonSummary `json:"summary"`
	Habits     []jsonHabit `json:"habits"`
}

type jsonSummary struct {
	TotalHabits           int     `json:"total_habits"`
	TotalCompletions      int     `json:"total_completions"`
	AverageCompletionRate float64 `json:"average_completion_rate"`
}

type jsonHabit struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Emoji          string         `json:"emoji,omitempty"`
	Color          jsonColor      `json:"color"`
	CompletedDates []string       `json:"completed_dates"`
	Analytics      *jsonAnalytics `json:"analytics,omitempty"`
}

type jsonColor struct {
	Red     float64 `json:"red"`
	Green   float64 `json:"green"`
	Blue    float64 `json:"blue"`
	Opacity float64 `json:"opacity"`
}

type jsonAnalytics struct {
	CompletionRate   float64        `json:"completion_rate"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	TotalCompletions int            `json:"total_completions"`
	WeekdayDist      map[string]int `json:"weekday_distribution"`
}

// ToJSON writes the habit collection with per-habit analytics
// snapshots to path. Completed dates are sorted ISO day strings so
// the output is stable across runs.
func ToJSON(habits []*habit.Habit, stats map[string]habit.Stats, metrics habit.Metrics, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			TotalHabits:           metrics.TotalHabits,
			TotalCompletions:      metrics.TotalCompletions,
			AverageCompletionRate: metrics.AverageCompletionRate,
		},
	}

	for _, h := range habits {
		jh := jsonHabit{
			ID:          h.ID.String(),
			Title:       h.Title,
			Description: h.Description,
			Emoji:       h.Emoji,
			Color: jsonColor{
				Red:     h.Color.Red,
				Green:   h.Color.Green,
				Blue:    h.Color.Blue,
				Opacity: h.Color.Opacity,
			},
			CompletedDates: sortedDays(h),
		}
		if s, ok := stats[h.ID.String()]; ok {
			jh.Analytics = &jsonAnalytics{
				CompletionRate:   s.CompletionRate,
				CurrentStreak:    s.CurrentStreak,
				LongestStreak:    s.LongestStreak,
				TotalCompletions: s.TotalCompletions,
				WeekdayDist:      s.WeekdayDist,
			}
		}
		export.Habits = append(export.Habits, jh)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func sortedDays(h *habit.Habit) []string {
	days := make([]string, 0, len(h.Completed))
	for d := range h.Completed {
		days = append(days, string(d))
	}
	sort.Strings(days)
	return days
}
